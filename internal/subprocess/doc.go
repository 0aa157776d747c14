// Package subprocess implements the transport that spawns a debug adapter
// process and exchanges Content-Length framed JSON messages over its
// standard streams.
package subprocess
