package dapsdk

import "github.com/wagiedev/dap-sdk-go/internal/config"

// Transport defines the interface for adapter communication.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods (e.g., socket-attached adapters).
//
// The default implementation is AdapterTransport which spawns a subprocess
// and frames messages over its standard streams. Custom transports can be
// injected via WithTransport.
type Transport = config.Transport
