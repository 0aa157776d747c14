package protocol

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wagiedev/dap-sdk-go/internal/errors"
	"github.com/wagiedev/dap-sdk-go/internal/subprocess"
	"github.com/wagiedev/dap-sdk-go/internal/wire"
)

// Request command names.
const (
	commandInitialize        = "initialize"
	commandLaunch            = "launch"
	commandConfigurationDone = "configurationDone"
	commandTerminate         = "terminate"
	commandDisconnect        = "disconnect"
	commandThreads           = "threads"
)

// sendRequest allocates a seq, lowers args into the generic form, injects
// any extra fields under the request's arguments key, frames the message,
// and writes it. It returns the allocated seq.
//
// args may be nil for requests without arguments; extra fields force an
// empty arguments object into existence so the injection path resolves.
func (s *Session) sendRequest(ctx context.Context, command string, args any, extra *wire.Object) (int32, error) {
	seq := s.nextSeq()

	req := wire.NewObject()
	req.Set("seq", wire.Int(int64(seq)))
	req.Set("type", wire.String("request"))
	req.Set("command", wire.String(command))

	if args != nil {
		argsObj, err := wire.ToObject(args)
		if err != nil {
			return 0, err
		}

		req.Set("arguments", wire.ObjectValue(argsObj))
	} else if extra != nil && extra.Len() > 0 {
		req.Set("arguments", wire.ObjectValue(wire.NewObject()))
	}

	if extra != nil {
		for key, value := range extra.All() {
			if err := wire.InjectIntoAncestor(req, "arguments", key, value); err != nil {
				return 0, err
			}
		}
	}

	framed, err := subprocess.EncodeMessage(req)
	if err != nil {
		return 0, err
	}

	if err := s.transport.SendMessage(ctx, framed); err != nil {
		return 0, err
	}

	s.log.Debug("Request sent", "command", command, "seq", seq)

	return seq, nil
}

// SendInitializeRequest sends the initialize request and captures the
// client capability bits from its arguments.
func (s *Session) SendInitializeRequest(ctx context.Context, args *InitializeArguments, extra *wire.Object) (int32, error) {
	if args == nil {
		args = &InitializeArguments{}
	}

	s.clientCaps = clientCapabilities(args)

	return s.sendRequest(ctx, commandInitialize, args, extra)
}

// HandleInitializeResponse consumes the initialize response matching seq
// and captures the adapter capability set from its body.
//
// Capabilities are left unmodified when the response is missing or fails
// envelope validation.
func (s *Session) HandleInitializeResponse(seq int32) error {
	msg, err := s.takeResponse(seq, commandInitialize)
	if err != nil {
		return err
	}

	body, ok := msg.GetObject("body")
	if !ok {
		// An adapter that declares nothing gets the zero capability set.
		s.adapterCaps = Capabilities{}

		return nil
	}

	var caps Capabilities
	if err := wire.FromObject(body, &caps); err != nil {
		return fmt.Errorf("parse capabilities: %w", err)
	}

	s.adapterCaps = caps

	s.log.Info("Adapter capabilities captured",
		"configuration_done", caps.SupportsConfigurationDoneRequest,
		"terminate", caps.SupportsTerminateRequest,
	)

	return nil
}

// SendLaunchRequest sends the launch request.
//
// Calling this in any state but not_started is a programmer-contract
// violation and panics: a launched or terminated session cannot be
// launched again, a new session must be constructed instead.
//
// When a launch schema is configured, the arguments — after extra-field
// merging — are validated first; a violation fails LaunchValidationError
// and writes nothing to the transport.
func (s *Session) SendLaunchRequest(ctx context.Context, args *LaunchArguments, extra *wire.Object) (int32, error) {
	if s.state != StateNotStarted {
		panic(fmt.Sprintf("SendLaunchRequest called in state %s", s.state))
	}

	if args == nil {
		args = &LaunchArguments{}
	}

	if s.launchSchema != nil {
		if err := s.validateLaunch(args, extra); err != nil {
			return 0, err
		}
	}

	return s.sendRequest(ctx, commandLaunch, args, extra)
}

// validateLaunch checks the merged launch arguments against the
// configured schema without touching the transport.
func (s *Session) validateLaunch(args *LaunchArguments, extra *wire.Object) error {
	merged, err := wire.ToObject(args)
	if err != nil {
		return err
	}

	wire.Merge(merged, extra)

	data, err := merged.MarshalJSON()
	if err != nil {
		return err
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return err
	}

	if err := s.launchSchema.Validate(instance); err != nil {
		return &errors.LaunchValidationError{Err: err}
	}

	return nil
}

// HandleLaunchResponse consumes the launch response matching seq; on
// success the session transitions to launched.
func (s *Session) HandleLaunchResponse(seq int32) error {
	if _, err := s.takeResponse(seq, commandLaunch); err != nil {
		return err
	}

	s.state = StateLaunched
	s.log.Info("Debuggee launched")

	return nil
}

// SendConfigurationDoneRequest sends the configurationDone request.
// It refuses, writing nothing, when the adapter did not declare the
// supportsConfigurationDoneRequest capability.
func (s *Session) SendConfigurationDoneRequest(ctx context.Context, extra *wire.Object) (int32, error) {
	if !s.adapterCaps.SupportsConfigurationDoneRequest {
		return 0, errors.ErrConfigurationDoneUnsupported
	}

	return s.sendRequest(ctx, commandConfigurationDone, nil, extra)
}

// HandleConfigurationDoneResponse consumes the configurationDone response
// matching seq.
func (s *Session) HandleConfigurationDoneResponse(seq int32) error {
	_, err := s.takeResponse(seq, commandConfigurationDone)

	return err
}

// SendTerminateRequest sends the terminate request. It refuses, writing
// nothing, when the adapter did not declare the supportsTerminateRequest
// capability.
func (s *Session) SendTerminateRequest(ctx context.Context, args *TerminateArguments, extra *wire.Object) (int32, error) {
	if !s.adapterCaps.SupportsTerminateRequest {
		return 0, errors.ErrTerminateUnsupported
	}

	if args == nil {
		// Avoid wrapping a typed nil pointer into sendRequest's any
		// parameter, which would defeat its args != nil check.
		return s.sendRequest(ctx, commandTerminate, nil, extra)
	}

	return s.sendRequest(ctx, commandTerminate, args, extra)
}

// HandleTerminateResponse consumes the terminate response matching seq.
// The state change follows from the adapter's terminated event, not from
// this response.
func (s *Session) HandleTerminateResponse(seq int32) error {
	_, err := s.takeResponse(seq, commandTerminate)

	return err
}

// SendDisconnectRequest sends the disconnect request. No capability gate:
// every adapter supports disconnect.
func (s *Session) SendDisconnectRequest(ctx context.Context, args *DisconnectArguments, extra *wire.Object) (int32, error) {
	if args == nil {
		// Avoid wrapping a typed nil pointer into sendRequest's any
		// parameter, which would defeat its args != nil check.
		return s.sendRequest(ctx, commandDisconnect, nil, extra)
	}

	return s.sendRequest(ctx, commandDisconnect, args, extra)
}

// HandleDisconnectResponse consumes the disconnect response matching seq;
// on success the session state resets to not_started.
func (s *Session) HandleDisconnectResponse(seq int32) error {
	if _, err := s.takeResponse(seq, commandDisconnect); err != nil {
		return err
	}

	s.state = StateNotStarted
	s.log.Info("Disconnected from debuggee")

	return nil
}

// SendThreadsRequest sends the threads request.
func (s *Session) SendThreadsRequest(ctx context.Context) (int32, error) {
	return s.sendRequest(ctx, commandThreads, nil, nil)
}

// HandleThreadsResponse consumes the threads response matching seq and
// parses its body.threads array into typed records.
func (s *Session) HandleThreadsResponse(seq int32) ([]Thread, error) {
	msg, err := s.takeResponse(seq, commandThreads)
	if err != nil {
		return nil, err
	}

	body, ok := msg.GetObject("body")
	if !ok {
		return nil, fmt.Errorf("threads response has no body")
	}

	var parsed struct {
		Threads []Thread `json:"threads"`
	}

	if err := wire.FromObject(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse threads: %w", err)
	}

	return parsed.Threads, nil
}

// EndSession shuts the debuggee down, dispatching on the current state:
// a session that never launched fails ErrSessionNotStarted, attached
// sessions are not supported, and a launched session sends the terminate
// or disconnect request selected by mode, returning its seq.
func (s *Session) EndSession(ctx context.Context, mode EndMode) (int32, error) {
	switch s.state {
	case StateLaunched:
		switch mode {
		case EndModeTerminate:
			return s.SendTerminateRequest(ctx, nil, nil)
		case EndModeDisconnect:
			return s.SendDisconnectRequest(ctx, nil, nil)
		default:
			return 0, fmt.Errorf("unknown end mode %q", mode)
		}

	case StateAttached:
		return 0, errors.ErrAttachedSessionsNotSupported

	case StateNotStarted, StateTerminated:
		// Terminated means the adapter already died; there is nothing
		// left to end either way.
		return 0, errors.ErrSessionNotStarted

	default:
		return 0, fmt.Errorf("unknown session state %s", s.state)
	}
}
