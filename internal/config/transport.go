// Package config provides configuration types for the DAP SDK.
package config

import (
	"context"
	"time"

	"github.com/wagiedev/dap-sdk-go/internal/wire"
)

// Transport defines the interface for adapter communication.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods (e.g., socket-attached adapters).
//
// The default implementation is AdapterTransport which spawns a subprocess
// and frames messages over its standard streams. Custom transports can be
// injected via Options.Transport.
type Transport interface {
	// Start initializes the transport and prepares it for communication.
	// This is called before any messages are sent or received.
	Start(ctx context.Context) error

	// MessageExists polls for a complete incoming message, waiting at
	// most timeout. It returns ErrEndOfStream once the adapter's output
	// stream has ended; that condition is terminal and never retried.
	MessageExists(ctx context.Context, timeout time.Duration) (bool, error)

	// ReadMessage returns the next complete message as a parsed generic
	// value. It returns ErrNoMessage when MessageExists has not observed
	// one, and ErrEndOfStream after the adapter's output stream ended.
	ReadMessage(ctx context.Context) (wire.Value, error)

	// SendMessage writes an already-framed message to the adapter.
	// This method must be safe for concurrent use.
	SendMessage(ctx context.Context, data []byte) error

	// Close terminates the transport and releases resources.
	// It's safe to call Close multiple times.
	Close() error
}
