package protocol

import (
	"fmt"

	"github.com/wagiedev/dap-sdk-go/internal/errors"
	"github.com/wagiedev/dap-sdk-go/internal/wire"
)

// eventTerminated is the event name carrying an optional restart payload.
const eventTerminated = "terminated"

// HandleEvent consumes the oldest pending event with the given name,
// moving it to the handled queue, and returns it. Fails
// ErrEventDoesNotExist when no pending event matches.
//
// The terminated event's body.restart payload is deep-cloned into
// session-owned storage before the move: the returned message's backing
// storage is not guaranteed to outlive later queue operations, so the
// session never retains a reference into it.
func (s *Session) HandleEvent(name string) (*wire.Object, error) {
	for i, msg := range s.pendingEvents {
		event, ok := msg.GetString("event")
		if !ok || event != name {
			continue
		}

		if name == eventTerminated {
			s.captureRestart(msg)
		}

		s.moveEvent(i)
		s.log.Debug("Handled event", "event", name)

		return msg, nil
	}

	return nil, fmt.Errorf("%w: %q", errors.ErrEventDoesNotExist, name)
}

// HandleEventBySeq consumes the pending event whose own seq matches,
// moving it to the handled queue, and returns it.
func (s *Session) HandleEventBySeq(seq int64) (*wire.Object, error) {
	for i, msg := range s.pendingEvents {
		eventSeq, err := seqField(msg, "seq")
		if err != nil {
			return nil, err
		}

		if eventSeq != seq {
			continue
		}

		if event, _ := msg.GetString("event"); event == eventTerminated {
			s.captureRestart(msg)
		}

		s.moveEvent(i)
		s.log.Debug("Handled event", "seq", seq)

		return msg, nil
	}

	return nil, fmt.Errorf("%w: seq %d", errors.ErrEventDoesNotExist, seq)
}

// captureRestart clones the terminated event's body.restart payload, if
// present, into session-owned storage for a later relaunch.
func (s *Session) captureRestart(msg *wire.Object) {
	body, ok := msg.GetObject("body")
	if !ok {
		return
	}

	restart, ok := body.Get("restart")
	if !ok {
		return
	}

	s.restart = wire.DeepClone(wire.CopyString, restart)
	s.hasRestart = true

	s.log.Debug("Captured restart payload from terminated event")
}

// moveEvent moves pendingEvents[i] to the handled queue.
func (s *Session) moveEvent(i int) {
	msg := s.pendingEvents[i]
	s.pendingEvents = append(s.pendingEvents[:i], s.pendingEvents[i+1:]...)
	s.handledEvents = append(s.handledEvents, msg)
}
