// Package protocol implements the debug-adapter session engine.
//
// A Session owns the adapter transport, the request sequence counter, the
// negotiated capability sets, and four message queues (pending and handled
// for responses and events). All methods run on the caller's single
// control thread: the session polls the transport with a bounded timeout,
// classifies whatever arrived, and correlates responses by request_seq
// and events by name or seq against the pending queues. Handled messages
// are retained for the session's lifetime as an audit trail.
package protocol
