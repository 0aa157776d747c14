package dapsdk

import (
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/dap-sdk-go/internal/config"
)

// SessionOptions configures a session and its adapter subprocess.
type SessionOptions = config.Options

// Option configures SessionOptions using the functional options pattern.
type Option func(*SessionOptions)

// applyOptions applies functional options to a SessionOptions struct.
func applyOptions(opts []Option) *SessionOptions {
	options := &SessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *SessionOptions) {
		o.Logger = logger
	}
}

// WithAdapterPath sets the debug adapter binary to spawn.
// A bare name is resolved against PATH.
func WithAdapterPath(path string) Option {
	return func(o *SessionOptions) {
		o.AdapterPath = path
	}
}

// WithAdapterArgs sets extra command-line arguments for the adapter.
func WithAdapterArgs(args ...string) Option {
	return func(o *SessionOptions) {
		o.AdapterArgs = args
	}
}

// WithCwd sets the working directory for the adapter process.
func WithCwd(cwd string) Option {
	return func(o *SessionOptions) {
		o.Cwd = cwd
	}
}

// WithEnv provides additional environment variables for the adapter
// process, merged over the current environment.
func WithEnv(env map[string]string) Option {
	return func(o *SessionOptions) {
		o.Env = env
	}
}

// WithStderr sets a callback receiving each line of the adapter's stderr.
func WithStderr(callback func(line string)) Option {
	return func(o *SessionOptions) {
		o.Stderr = callback
	}
}

// WithPollInterval overrides the interval the wait helpers sleep between
// transport polls.
func WithPollInterval(interval time.Duration) Option {
	return func(o *SessionOptions) {
		o.PollInterval = interval
	}
}

// WithLaunchSchema validates launch arguments (after extra-field merging)
// against the given schema before they are transmitted.
func WithLaunchSchema(schema *jsonschema.Schema) Option {
	return func(o *SessionOptions) {
		o.LaunchSchema = schema
	}
}

// WithTransport overrides the default subprocess transport.
// Primarily used for testing with mock transports.
func WithTransport(transport Transport) Option {
	return func(o *SessionOptions) {
		o.Transport = transport
	}
}
