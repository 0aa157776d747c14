package dapsdk

import (
	"fmt"
	"log/slog"

	"github.com/wagiedev/dap-sdk-go/internal/protocol"
	"github.com/wagiedev/dap-sdk-go/internal/sessiondata"
	"github.com/wagiedev/dap-sdk-go/internal/subprocess"
)

// Session drives one debug adapter over its transport. See the package
// documentation for the polling model.
type Session = protocol.Session

// SessionData is the derived read-cache of module and thread projections.
type SessionData = sessiondata.SessionData

// NewSession creates a session from the given options.
//
// Unless a custom transport is injected with WithTransport, an adapter
// path is required and a subprocess transport is built for it. The
// adapter is not spawned until Session.Start.
func NewSession(opts ...Option) (*Session, error) {
	options := applyOptions(opts)

	transport := options.Transport
	if transport == nil {
		if options.AdapterPath == "" {
			return nil, fmt.Errorf("adapter path required: set WithAdapterPath or WithTransport")
		}

		log := options.Logger
		if log == nil {
			log = NopLogger()
		}

		transport = subprocess.NewAdapterTransport(log, options)
	}

	return protocol.New(options, transport)
}

// NewSessionData creates an empty derived cache. A nil logger disables
// logging.
func NewSessionData(log *slog.Logger) *SessionData {
	return sessiondata.New(log)
}
