package protocol

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/dap-sdk-go/internal/config"
	"github.com/wagiedev/dap-sdk-go/internal/errors"
	"github.com/wagiedev/dap-sdk-go/internal/wire"
)

// Session drives one debug adapter over its transport.
//
// A session is single-threaded and cooperative: the owning control thread
// polls with QueueMessages, then dispatches the queued responses and
// events through the Handle* methods. Nothing here locks — the session
// exclusively owns its queues, capability sets, and sequence counter.
type Session struct {
	log          *slog.Logger
	id           string
	transport    config.Transport
	options      *config.Options
	launchSchema *jsonschema.Resolved

	// seq is the monotonically increasing request counter. It starts at
	// 1, yields one value per outgoing request, and is never assigned to
	// incoming messages.
	seq   int32
	state State

	clientCaps  ClientCapabilities
	adapterCaps Capabilities

	// Each raw message lives in exactly one of these queues and is moved,
	// never copied, from pending to handled. Handled messages are kept
	// for the session's lifetime.
	pendingResponses []*wire.Object
	handledResponses []*wire.Object
	pendingEvents    []*wire.Object
	handledEvents    []*wire.Object

	// restart holds the terminated event's body.restart payload,
	// deep-cloned into session-owned storage when the event is handled.
	restart    wire.Value
	hasRestart bool
}

// New creates a session over the given transport.
//
// When options.Transport is nil the caller is expected to have built an
// AdapterTransport; the transport must not have been started yet.
func New(options *config.Options, transport config.Transport) (*Session, error) {
	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := ulid.Make().String()

	s := &Session{
		log:       log.With("component", "session", "session_id", id),
		id:        id,
		transport: transport,
		options:   options,
		state:     StateNotStarted,
	}

	if options.LaunchSchema != nil {
		resolved, err := options.LaunchSchema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolve launch schema: %w", err)
		}

		s.launchSchema = resolved
	}

	return s, nil
}

// ID returns the session's identifier, used to correlate log output.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// ClientCapabilities returns the capability bits captured from the
// outgoing initialize request.
func (s *Session) ClientCapabilities() ClientCapabilities { return s.clientCaps }

// AdapterCapabilities returns the capability set captured from the
// initialize response.
func (s *Session) AdapterCapabilities() Capabilities { return s.adapterCaps }

// RestartArguments returns the deep-cloned body.restart payload of the
// last handled terminated event, for passing back on a relaunch.
func (s *Session) RestartArguments() (wire.Value, bool) {
	return s.restart, s.hasRestart
}

// Start starts the transport (for process transports, spawns the adapter).
func (s *Session) Start(ctx context.Context) error {
	s.log.Info("Starting session")

	return s.transport.Start(ctx)
}

// Close shuts down the transport. It does not send protocol-level
// shutdown requests; use EndSession for a graceful stop first.
func (s *Session) Close() error {
	s.log.Debug("Closing session")

	return s.transport.Close()
}

// QueueMessages polls the transport once, waiting at most timeout, and
// appends whatever arrived to the matching pending queue.
//
// An unparseable or untyped message fails with InvalidMessageError; a
// message whose type names neither a response nor an event fails
// ErrUnknownMessage (the adapter never sends us requests). ErrEndOfStream
// means the adapter died: the session transitions to terminated and the
// error propagates — there is no retry.
func (s *Session) QueueMessages(ctx context.Context, timeout time.Duration) error {
	exists, err := s.transport.MessageExists(ctx, timeout)
	if err != nil {
		return s.intakeError(err)
	}

	if !exists {
		return nil
	}

	value, err := s.transport.ReadMessage(ctx)
	if err != nil {
		return s.intakeError(err)
	}

	msg, ok := value.Object()
	if !ok {
		return &errors.InvalidMessageError{
			Reason:  fmt.Sprintf("root is %s, not an object", value.Kind()),
			RawData: rawData(value),
		}
	}

	msgType, ok := msg.GetString("type")
	if !ok {
		return &errors.InvalidMessageError{
			Reason:  "missing or non-string 'type' field",
			RawData: rawData(value),
		}
	}

	switch msgType {
	case "response":
		s.pendingResponses = append(s.pendingResponses, msg)
		s.log.Debug("Queued response", "pending_responses", len(s.pendingResponses))

	case "event":
		s.pendingEvents = append(s.pendingEvents, msg)
		s.log.Debug("Queued event", "pending_events", len(s.pendingEvents))

	default:
		return fmt.Errorf("%w: %q", errors.ErrUnknownMessage, msgType)
	}

	return nil
}

// intakeError marks the session terminated when the adapter died.
func (s *Session) intakeError(err error) error {
	if stderrors.Is(err, errors.ErrEndOfStream) {
		s.log.Warn("Adapter output stream ended", "state", s.state)
		s.state = StateTerminated
	}

	return err
}

// takeResponse finds the pending response whose request_seq matches seq,
// validates the common envelope, and moves it to the handled queue.
//
// Validation order: the response must exist, success must be true,
// request_seq must equal seq, and command must match. A response that
// fails validation stays pending.
func (s *Session) takeResponse(seq int32, command string) (*wire.Object, error) {
	idx := -1

	for i, msg := range s.pendingResponses {
		requestSeq, err := seqField(msg, "request_seq")
		if err != nil {
			return nil, err
		}

		if requestSeq == int64(seq) {
			idx = i

			break
		}
	}

	if idx < 0 {
		return nil, fmt.Errorf("%w: request_seq %d", errors.ErrResponseDoesNotExist, seq)
	}

	msg := s.pendingResponses[idx]

	if success, _ := msg.GetBool("success"); !success {
		message, _ := msg.GetString("message")

		return nil, &errors.RequestFailedError{Command: command, Seq: seq, Message: message}
	}

	// The scan matched on request_seq, but keep the envelope check in
	// case the lookup is ever replaced by an index.
	requestSeq, err := seqField(msg, "request_seq")
	if err != nil {
		return nil, err
	}

	if requestSeq != int64(seq) {
		return nil, &errors.MismatchedSeqError{Want: seq, Got: int32(requestSeq)}
	}

	if got, _ := msg.GetString("command"); got != command {
		return nil, &errors.WrongCommandError{Want: command, Got: got}
	}

	s.pendingResponses = append(s.pendingResponses[:idx], s.pendingResponses[idx+1:]...)
	s.handledResponses = append(s.handledResponses, msg)

	s.log.Debug("Handled response", "command", command, "seq", seq)

	return msg, nil
}

// nextSeq allocates the next request sequence number.
func (s *Session) nextSeq() int32 {
	s.seq++

	return s.seq
}

// seqField reads an integer correlation field, failing
// ErrInvalidSeqFromAdapter when it is missing or not an integer.
func seqField(msg *wire.Object, key string) (int64, error) {
	v, ok := msg.Get(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", errors.ErrInvalidSeqFromAdapter, key)
	}

	i, ok := v.Int()
	if !ok {
		return 0, fmt.Errorf("%w: %q is %s", errors.ErrInvalidSeqFromAdapter, key, v.Kind())
	}

	return i, nil
}

// rawData renders a value for InvalidMessageError diagnostics.
func rawData(v wire.Value) string {
	data, err := v.MarshalJSON()
	if err != nil {
		return ""
	}

	return string(data)
}
