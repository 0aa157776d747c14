package config

import (
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
)

// DefaultPollInterval is the interval the blocking wait helpers sleep
// between transport polls.
const DefaultPollInterval = 50 * time.Millisecond

// Options configures a debug session and its adapter subprocess.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// AdapterPath is the debug adapter binary to spawn. A bare name is
	// resolved against PATH.
	AdapterPath string

	// AdapterArgs are extra command-line arguments for the adapter.
	AdapterArgs []string

	// Cwd sets the working directory for the adapter process.
	Cwd string

	// Env provides additional environment variables for the adapter
	// process, merged over the current environment.
	Env map[string]string

	// Stderr, if set, receives each line of the adapter's stderr output.
	Stderr func(line string)

	// PollInterval overrides DefaultPollInterval for the wait helpers.
	PollInterval time.Duration

	// LaunchSchema, if set, validates launch arguments (after any
	// extra-field merging) before they are transmitted.
	LaunchSchema *jsonschema.Schema

	// Transport overrides the default subprocess transport.
	// Primarily used for testing with mock transports.
	Transport Transport
}
