package dapsdk

import "github.com/wagiedev/dap-sdk-go/internal/errors"

// Re-export error types from internal package

// AdapterNotFoundError indicates the debug adapter binary was not found.
type AdapterNotFoundError = errors.AdapterNotFoundError

// AdapterConnectionError indicates failure to spawn or connect to the adapter.
type AdapterConnectionError = errors.AdapterConnectionError

// ProcessError indicates the adapter process failed.
type ProcessError = errors.ProcessError

// InvalidMessageError indicates a wire message could not be classified.
type InvalidMessageError = errors.InvalidMessageError

// RequestFailedError indicates the adapter answered a request with success=false.
type RequestFailedError = errors.RequestFailedError

// MismatchedSeqError indicates a response's request_seq did not match the
// seq it was handled against.
type MismatchedSeqError = errors.MismatchedSeqError

// WrongCommandError indicates a response's command did not match the
// request it was correlated with.
type WrongCommandError = errors.WrongCommandError

// LaunchValidationError indicates launch arguments failed schema
// validation before transmission.
type LaunchValidationError = errors.LaunchValidationError

// DAPSDKError is the base interface for all SDK errors.
type DAPSDKError = errors.DAPSDKError

// Re-export sentinel errors from internal package.
var (
	// ErrTransportNotConnected indicates the transport has not been started.
	ErrTransportNotConnected = errors.ErrTransportNotConnected

	// ErrEndOfStream indicates the adapter's output stream ended; the
	// session is terminal and a new one must be constructed.
	ErrEndOfStream = errors.ErrEndOfStream

	// ErrNoMessage indicates no complete message is currently available.
	// Custom Transport implementations return it from ReadMessage when
	// nothing is buffered.
	ErrNoMessage = errors.ErrNoMessage

	// ErrStdinClosed indicates the adapter's stdin was closed due to
	// context cancellation.
	ErrStdinClosed = errors.ErrStdinClosed

	// ErrUnknownMessage indicates the message's "type" field named
	// neither a response nor an event.
	ErrUnknownMessage = errors.ErrUnknownMessage

	// ErrInvalidSeqFromAdapter indicates a message carried a non-integer
	// seq or request_seq field.
	ErrInvalidSeqFromAdapter = errors.ErrInvalidSeqFromAdapter

	// ErrResponseDoesNotExist indicates no pending response matches the
	// requested seq.
	ErrResponseDoesNotExist = errors.ErrResponseDoesNotExist

	// ErrEventDoesNotExist indicates no pending event matches the
	// requested name or seq.
	ErrEventDoesNotExist = errors.ErrEventDoesNotExist

	// ErrSessionNotStarted indicates an operation that requires a
	// launched session was invoked before launch.
	ErrSessionNotStarted = errors.ErrSessionNotStarted

	// ErrAttachedSessionsNotSupported indicates the attached session
	// state is declared but not implemented.
	ErrAttachedSessionsNotSupported = errors.ErrAttachedSessionsNotSupported

	// ErrConfigurationDoneUnsupported indicates the adapter did not
	// declare the supportsConfigurationDoneRequest capability.
	ErrConfigurationDoneUnsupported = errors.ErrConfigurationDoneUnsupported

	// ErrTerminateUnsupported indicates the adapter did not declare the
	// supportsTerminateRequest capability.
	ErrTerminateUnsupported = errors.ErrTerminateUnsupported

	// ErrNotSerializable indicates a value has no generic-object encoding.
	ErrNotSerializable = errors.ErrNotSerializable

	// ErrAncestorDoesNotExist indicates a segment of an injection path
	// named a key that is absent.
	ErrAncestorDoesNotExist = errors.ErrAncestorDoesNotExist

	// ErrAncestorIsNotAnObject indicates a segment of an injection path
	// resolved to a non-object value.
	ErrAncestorIsNotAnObject = errors.ErrAncestorIsNotAnObject
)
