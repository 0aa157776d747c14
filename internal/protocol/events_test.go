package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/dap-sdk-go/internal/errors"
	"github.com/wagiedev/dap-sdk-go/internal/wire"
)

// TestHandleEvent tests name-based event consumption in arrival order.
func TestHandleEvent(t *testing.T) {
	session, transport := newTestSession(t)

	transport.push(t, `{"seq":1,"type":"event","event":"output","body":{"output":"first"}}`)
	transport.push(t, `{"seq":2,"type":"event","event":"module","body":{"reason":"new"}}`)
	transport.push(t, `{"seq":3,"type":"event","event":"output","body":{"output":"second"}}`)
	queueAll(t, session, transport)

	msg, err := session.HandleEvent("output")
	require.NoError(t, err)

	body, ok := msg.GetObject("body")
	require.True(t, ok)
	out, _ := body.GetString("output")
	require.Equal(t, "first", out, "the oldest matching event is consumed first")

	require.Len(t, session.pendingEvents, 2)
	require.Len(t, session.handledEvents, 1)

	_, err = session.HandleEvent("stopped")
	require.ErrorIs(t, err, errors.ErrEventDoesNotExist)
}

// TestHandleEventBySeq tests seq-based event consumption.
func TestHandleEventBySeq(t *testing.T) {
	session, transport := newTestSession(t)

	transport.push(t, `{"seq":7,"type":"event","event":"output"}`)
	transport.push(t, `{"seq":9,"type":"event","event":"thread"}`)
	queueAll(t, session, transport)

	msg, err := session.HandleEventBySeq(9)
	require.NoError(t, err)

	event, _ := msg.GetString("event")
	require.Equal(t, "thread", event)

	_, err = session.HandleEventBySeq(9)
	require.ErrorIs(t, err, errors.ErrEventDoesNotExist)
}

// TestTerminatedEvent_RestartCapture tests that the terminated event's
// restart payload is captured into session-owned storage and survives
// mutation of the handled message.
func TestTerminatedEvent_RestartCapture(t *testing.T) {
	session, transport := newTestSession(t)

	transport.push(t, `{"seq":4,"type":"event","event":"terminated","body":{"restart":{"port":4711,"host":"localhost"}}}`)
	queueAll(t, session, transport)

	_, ok := session.RestartArguments()
	require.False(t, ok, "no restart payload before the event is handled")

	msg, err := session.HandleEvent("terminated")
	require.NoError(t, err)

	restart, ok := session.RestartArguments()
	require.True(t, ok)

	// Mutate the handled message; the captured payload must not move.
	body, _ := msg.GetObject("body")
	inner, _ := body.GetObject("restart")
	inner.Set("port", wire.Int(9999))
	inner.Set("host", wire.String("clobbered"))

	obj, ok := restart.Object()
	require.True(t, ok)

	port, ok := obj.GetInt("port")
	require.True(t, ok)
	require.Equal(t, int64(4711), port)

	host, _ := obj.GetString("host")
	require.Equal(t, "localhost", host)
}

// TestTerminatedEvent_NoRestart tests that a bare terminated event
// leaves no restart payload behind.
func TestTerminatedEvent_NoRestart(t *testing.T) {
	session, transport := newTestSession(t)

	transport.push(t, `{"seq":4,"type":"event","event":"terminated","body":{}}`)
	queueAll(t, session, transport)

	_, err := session.HandleEvent("terminated")
	require.NoError(t, err)

	_, ok := session.RestartArguments()
	require.False(t, ok)
}
