package sessiondata

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/wagiedev/dap-sdk-go/internal/protocol"
	"github.com/wagiedev/dap-sdk-go/internal/wire"
)

// SessionData is the derived cache built by feeding a session's event and
// response handlers. Like the session it is single-threaded: the control
// thread that drains the queues is the only writer, the UI tick the only
// reader.
type SessionData struct {
	log     *slog.Logger
	modules []protocol.Module
	threads []protocol.Thread
	strings *Interner
}

// New creates an empty cache.
func New(log *slog.Logger) *SessionData {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SessionData{
		log:     log.With("component", "session_data"),
		strings: NewInterner(),
	}
}

// HandleModuleEvent consumes the next unhandled module event from the
// session, extracts its module record, and adds it to the cache.
func (d *SessionData) HandleModuleEvent(session *protocol.Session) error {
	msg, err := session.HandleEvent("module")
	if err != nil {
		return err
	}

	body, ok := msg.GetObject("body")
	if !ok {
		return fmt.Errorf("module event has no body")
	}

	moduleObj, ok := body.GetObject("module")
	if !ok {
		return fmt.Errorf("module event body has no module")
	}

	var module protocol.Module
	if err := wire.FromObject(moduleObj, &module); err != nil {
		return fmt.Errorf("parse module: %w", err)
	}

	d.AddModule(module)

	return nil
}

// HandleThreadsResponse consumes the threads response matching seq from
// the session and replaces the thread snapshot with its contents.
func (d *SessionData) HandleThreadsResponse(session *protocol.Session, seq int32) error {
	threads, err := session.HandleThreadsResponse(seq)
	if err != nil {
		return err
	}

	d.SetThreads(threads)

	return nil
}

// AddModule adds a module to the cache unless one with the same
// identifier is already held. First write wins: a repeated identifier
// with different field values does not refresh the stored record.
// All string fields of a stored module are interned.
func (d *SessionData) AddModule(module protocol.Module) {
	for _, existing := range d.modules {
		if existing.ID == module.ID {
			d.log.Debug("Module already cached", "module_id", module.ID)

			return
		}
	}

	d.modules = append(d.modules, d.internModule(module))
	d.log.Debug("Module cached", "module_id", module.ID, "module_count", len(d.modules))
}

// SetThreads replaces the thread snapshot wholesale. Previous threads are
// discarded, never merged; incoming names are interned.
func (d *SessionData) SetThreads(threads []protocol.Thread) {
	d.threads = d.threads[:0]

	for _, t := range threads {
		d.threads = append(d.threads, protocol.Thread{
			ID:   t.ID,
			Name: d.strings.GetAndPut(t.Name),
		})
	}

	d.log.Debug("Thread snapshot replaced", "thread_count", len(d.threads))
}

// Modules returns a copy of the cached module records.
func (d *SessionData) Modules() []protocol.Module {
	out := make([]protocol.Module, len(d.modules))
	copy(out, d.modules)

	return out
}

// Threads returns a copy of the current thread snapshot.
func (d *SessionData) Threads() []protocol.Thread {
	out := make([]protocol.Thread, len(d.threads))
	copy(out, d.threads)

	return out
}

// internModule clones a module record with every string field interned.
func (d *SessionData) internModule(m protocol.Module) protocol.Module {
	return protocol.Module{
		ID:             protocol.ModuleID(d.strings.GetAndPut(string(m.ID))),
		Name:           d.strings.GetAndPut(m.Name),
		Path:           d.strings.GetAndPut(m.Path),
		IsOptimized:    m.IsOptimized,
		IsUserCode:     m.IsUserCode,
		Version:        d.strings.GetAndPut(m.Version),
		SymbolStatus:   d.strings.GetAndPut(m.SymbolStatus),
		SymbolFilePath: d.strings.GetAndPut(m.SymbolFilePath),
		DateTimeStamp:  d.strings.GetAndPut(m.DateTimeStamp),
		AddressRange:   d.strings.GetAndPut(m.AddressRange),
	}
}
