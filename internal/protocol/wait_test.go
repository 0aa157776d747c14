package protocol

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/dap-sdk-go/internal/errors"
)

// TestWaitForResponse tests that the wait returns once the matching
// response is queued, without consuming it.
func TestWaitForResponse(t *testing.T) {
	session, transport := newTestSession(t)
	ctx := context.Background()

	seq, err := session.SendInitializeRequest(ctx, &InitializeArguments{AdapterID: "mock"}, nil)
	require.NoError(t, err)

	transport.push(t, `{"seq":1,"type":"event","event":"output"}`)
	transport.push(t, responseJSON(int(seq), "initialize", true, ""))

	require.NoError(t, session.WaitForResponse(ctx, seq))

	// Waiting does not consume; handling still works afterwards.
	require.Len(t, session.pendingResponses, 1)
	require.NoError(t, session.HandleInitializeResponse(seq))
}

// TestWaitForResponse_ContextCancelled tests that cancellation stops
// the poll loop.
func TestWaitForResponse_ContextCancelled(t *testing.T) {
	session, _ := newTestSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := session.WaitForResponse(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}

// TestWaitForResponse_AdapterDied tests that adapter death surfaces
// instead of spinning forever.
func TestWaitForResponse_AdapterDied(t *testing.T) {
	session, transport := newTestSession(t)
	transport.pollErr = errors.ErrEndOfStream

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := session.WaitForResponse(ctx, 1)
	require.ErrorIs(t, err, errors.ErrEndOfStream)
	require.Equal(t, StateTerminated, session.State())
}

// TestWaitForEvent tests that the wait returns once a matching event is
// queued, leaving it pending.
func TestWaitForEvent(t *testing.T) {
	session, transport := newTestSession(t)
	ctx := context.Background()

	transport.push(t, `{"seq":1,"type":"event","event":"initialized"}`)

	require.NoError(t, session.WaitForEvent(ctx, "initialized"))
	require.Len(t, session.pendingEvents, 1)

	_, err := session.HandleEvent("initialized")
	require.NoError(t, err)
}
