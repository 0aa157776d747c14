package errors

import (
	"errors"
	"fmt"
)

// DAPSDKError is the base interface for all SDK errors.
type DAPSDKError interface {
	error
	IsDAPSDKError() bool
}

// Compile-time verification that all error types implement DAPSDKError.
var (
	_ DAPSDKError = (*AdapterNotFoundError)(nil)
	_ DAPSDKError = (*AdapterConnectionError)(nil)
	_ DAPSDKError = (*ProcessError)(nil)
	_ DAPSDKError = (*InvalidMessageError)(nil)
	_ DAPSDKError = (*RequestFailedError)(nil)
	_ DAPSDKError = (*MismatchedSeqError)(nil)
	_ DAPSDKError = (*WrongCommandError)(nil)
	_ DAPSDKError = (*LaunchValidationError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrTransportNotConnected indicates the transport has not been started.
	ErrTransportNotConnected = errors.New("transport not connected")

	// ErrEndOfStream indicates the adapter's output stream ended.
	// This is terminal for the session: the adapter process is gone and a
	// new session must be constructed to continue debugging.
	ErrEndOfStream = errors.New("end of adapter output stream")

	// ErrNoMessage indicates no complete message is currently available.
	ErrNoMessage = errors.New("no message available")

	// ErrStdinClosed indicates stdin was closed due to context cancellation.
	ErrStdinClosed = errors.New("stdin closed")

	// ErrUnknownMessage indicates the message's "type" field named neither
	// a response nor an event.
	ErrUnknownMessage = errors.New("unknown message type from adapter")

	// ErrInvalidSeqFromAdapter indicates a message carried a non-integer
	// seq or request_seq field.
	ErrInvalidSeqFromAdapter = errors.New("non-integer seq from adapter")

	// ErrResponseDoesNotExist indicates no pending response matches the
	// requested seq.
	ErrResponseDoesNotExist = errors.New("response does not exist")

	// ErrEventDoesNotExist indicates no pending event matches the
	// requested name or seq.
	ErrEventDoesNotExist = errors.New("event does not exist")

	// ErrSessionNotStarted indicates an operation that requires a launched
	// session was invoked before launch.
	ErrSessionNotStarted = errors.New("session not started")

	// ErrAttachedSessionsNotSupported indicates the attached session state
	// is declared but not implemented.
	ErrAttachedSessionsNotSupported = errors.New("attached sessions not supported")

	// ErrConfigurationDoneUnsupported indicates the adapter did not
	// declare the supportsConfigurationDoneRequest capability.
	ErrConfigurationDoneUnsupported = errors.New("adapter does not support the configurationDone request")

	// ErrTerminateUnsupported indicates the adapter did not declare the
	// supportsTerminateRequest capability.
	ErrTerminateUnsupported = errors.New("adapter does not support the terminate request")

	// ErrNotSerializable indicates a value has no generic-object encoding
	// (bare array or primitive root, or an unsupported dynamic shape).
	ErrNotSerializable = errors.New("value is not serializable as an object")

	// ErrAncestorDoesNotExist indicates a segment of an injection path
	// named a key that is absent.
	ErrAncestorDoesNotExist = errors.New("ancestor object does not exist")

	// ErrAncestorIsNotAnObject indicates a segment of an injection path
	// resolved to a non-object value.
	ErrAncestorIsNotAnObject = errors.New("ancestor is not an object")
)

// AdapterNotFoundError indicates the debug adapter binary was not found.
type AdapterNotFoundError struct {
	Path string
	Err  error
}

func (e *AdapterNotFoundError) Error() string {
	return fmt.Sprintf("debug adapter %q not found: %v", e.Path, e.Err)
}

func (e *AdapterNotFoundError) Unwrap() error {
	return e.Err
}

// IsDAPSDKError implements DAPSDKError.
func (e *AdapterNotFoundError) IsDAPSDKError() bool { return true }

// AdapterConnectionError indicates failure to spawn or connect to the adapter.
type AdapterConnectionError struct {
	Err error
}

func (e *AdapterConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to adapter: %v", e.Err)
}

func (e *AdapterConnectionError) Unwrap() error {
	return e.Err
}

// IsDAPSDKError implements DAPSDKError.
func (e *AdapterConnectionError) IsDAPSDKError() bool { return true }

// ProcessError indicates the adapter process failed.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("adapter process failed (exit %d): %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("adapter process failed (exit %d): %s", e.ExitCode, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsDAPSDKError implements DAPSDKError.
func (e *ProcessError) IsDAPSDKError() bool { return true }

// InvalidMessageError indicates a wire message could not be classified:
// the root was not an object or the "type" field was missing or non-string.
// The raw data that failed classification is preserved for debugging.
type InvalidMessageError struct {
	Reason  string
	RawData string
}

func (e *InvalidMessageError) Error() string {
	return fmt.Sprintf("invalid message from adapter: %s", e.Reason)
}

// IsDAPSDKError implements DAPSDKError.
func (e *InvalidMessageError) IsDAPSDKError() bool { return true }

// RequestFailedError indicates the adapter answered a request with
// success=false. Message carries the adapter's error description, if any.
type RequestFailedError struct {
	Command string
	Seq     int32
	Message string
}

func (e *RequestFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s request (seq %d) failed", e.Command, e.Seq)
	}

	return fmt.Sprintf("%s request (seq %d) failed: %s", e.Command, e.Seq, e.Message)
}

// IsDAPSDKError implements DAPSDKError.
func (e *RequestFailedError) IsDAPSDKError() bool { return true }

// MismatchedSeqError indicates a response's request_seq did not match the
// seq it was handled against.
type MismatchedSeqError struct {
	Want int32
	Got  int32
}

func (e *MismatchedSeqError) Error() string {
	return fmt.Sprintf("response request_seq %d does not match request seq %d", e.Got, e.Want)
}

// IsDAPSDKError implements DAPSDKError.
func (e *MismatchedSeqError) IsDAPSDKError() bool { return true }

// WrongCommandError indicates a response's command did not match the
// request it was correlated with.
type WrongCommandError struct {
	Want string
	Got  string
}

func (e *WrongCommandError) Error() string {
	return fmt.Sprintf("response command %q does not match request command %q", e.Got, e.Want)
}

// IsDAPSDKError implements DAPSDKError.
func (e *WrongCommandError) IsDAPSDKError() bool { return true }

// LaunchValidationError indicates launch arguments failed schema validation
// before transmission.
type LaunchValidationError struct {
	Err error
}

func (e *LaunchValidationError) Error() string {
	return fmt.Sprintf("launch arguments failed validation: %v", e.Err)
}

func (e *LaunchValidationError) Unwrap() error {
	return e.Err
}

// IsDAPSDKError implements DAPSDKError.
func (e *LaunchValidationError) IsDAPSDKError() bool { return true }
