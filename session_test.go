package dapsdk

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// fakeAdapter is a Transport that answers like a minimal debug adapter:
// every request gets a success response, initialize declares a fixed
// capability set, and launch emits a module event alongside its
// response.
type fakeAdapter struct {
	started  bool
	closed   bool
	incoming []Value
	sent     [][]byte
	nextSeq  int64
}

func (f *fakeAdapter) Start(_ context.Context) error {
	f.started = true

	return nil
}

func (f *fakeAdapter) MessageExists(_ context.Context, _ time.Duration) (bool, error) {
	return len(f.incoming) > 0, nil
}

func (f *fakeAdapter) ReadMessage(_ context.Context) (Value, error) {
	if len(f.incoming) == 0 {
		return Value{}, ErrNoMessage
	}

	msg := f.incoming[0]
	f.incoming = f.incoming[1:]

	return msg, nil
}

func (f *fakeAdapter) SendMessage(_ context.Context, data []byte) error {
	f.sent = append(f.sent, data)
	f.answer(data)

	return nil
}

func (f *fakeAdapter) Close() error {
	f.closed = true

	return nil
}

// answer inspects an outgoing frame and queues the adapter's replies.
func (f *fakeAdapter) answer(framed []byte) {
	_, body, found := bytes.Cut(framed, []byte("\r\n\r\n"))
	if !found {
		return
	}

	command := gjson.GetBytes(body, "command").Str
	requestSeq := gjson.GetBytes(body, "seq").Int()

	response := NewObject()
	response.Set("seq", Int(f.allocSeq()))
	response.Set("type", String("response"))
	response.Set("request_seq", Int(requestSeq))
	response.Set("command", String(command))
	response.Set("success", Bool(true))

	switch command {
	case "initialize":
		capsBody := NewObject()
		capsBody.Set("supportsConfigurationDoneRequest", Bool(true))
		capsBody.Set("supportsTerminateRequest", Bool(true))
		response.Set("body", ObjectValue(capsBody))

		f.incoming = append(f.incoming, ObjectValue(response))

		initialized := NewObject()
		initialized.Set("seq", Int(f.allocSeq()))
		initialized.Set("type", String("event"))
		initialized.Set("event", String("initialized"))
		f.incoming = append(f.incoming, ObjectValue(initialized))

	case "launch":
		f.incoming = append(f.incoming, ObjectValue(response))

		module := NewObject()
		module.Set("id", Int(1))
		module.Set("name", String("debuggee"))

		eventBody := NewObject()
		eventBody.Set("reason", String("new"))
		eventBody.Set("module", ObjectValue(module))

		event := NewObject()
		event.Set("seq", Int(f.allocSeq()))
		event.Set("type", String("event"))
		event.Set("event", String("module"))
		event.Set("body", ObjectValue(eventBody))
		f.incoming = append(f.incoming, ObjectValue(event))

	case "threads":
		mainThread := NewObject()
		mainThread.Set("id", Int(1))
		mainThread.Set("name", String("main"))

		threadsBody := NewObject()
		threadsBody.Set("threads", ArrayValue(NewArray(ObjectValue(mainThread))))
		response.Set("body", ObjectValue(threadsBody))
		f.incoming = append(f.incoming, ObjectValue(response))

	default:
		f.incoming = append(f.incoming, ObjectValue(response))
	}
}

func (f *fakeAdapter) allocSeq() int64 {
	f.nextSeq++

	return f.nextSeq
}

// TestSession_FullLifecycle drives a complete debugging conversation
// through the public API: initialize, launch, configurationDone, a
// threads snapshot into SessionData, and a terminate shutdown.
func TestSession_FullLifecycle(t *testing.T) {
	adapter := &fakeAdapter{}

	session, err := NewSession(
		WithTransport(adapter),
		WithPollInterval(time.Millisecond),
	)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, session.Start(ctx))
	require.True(t, adapter.started)
	require.Equal(t, StateNotStarted, session.State())

	// Initialize and capture capabilities.
	initSeq, err := session.SendInitializeRequest(ctx, &InitializeArguments{
		ClientID:  "lifecycle-test",
		AdapterID: "fake",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, int32(1), initSeq)

	require.NoError(t, session.WaitForResponse(ctx, initSeq))
	require.NoError(t, session.HandleInitializeResponse(initSeq))
	require.True(t, session.AdapterCapabilities().SupportsConfigurationDoneRequest)

	require.NoError(t, session.WaitForEvent(ctx, "initialized"))
	_, err = session.HandleEvent("initialized")
	require.NoError(t, err)

	// Launch with an adapter-specific extra field.
	extra := NewObject()
	extra.Set("program", String("/bin/debuggee"))

	launchSeq, err := session.SendLaunchRequest(ctx, nil, extra)
	require.NoError(t, err)

	_, launchBody, _ := bytes.Cut(adapter.sent[len(adapter.sent)-1], []byte("\r\n\r\n"))
	require.Equal(t, "/bin/debuggee", gjson.GetBytes(launchBody, "arguments.program").Str)

	require.NoError(t, session.WaitForResponse(ctx, launchSeq))
	require.NoError(t, session.HandleLaunchResponse(launchSeq))
	require.Equal(t, StateLaunched, session.State())

	// The module event feeds the derived cache.
	data := NewSessionData(nil)
	require.NoError(t, session.WaitForEvent(ctx, "module"))
	require.NoError(t, data.HandleModuleEvent(session))
	require.Len(t, data.Modules(), 1)
	require.Equal(t, "debuggee", data.Modules()[0].Name)

	// Finish configuration.
	cdSeq, err := session.SendConfigurationDoneRequest(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, session.WaitForResponse(ctx, cdSeq))
	require.NoError(t, session.HandleConfigurationDoneResponse(cdSeq))

	// Threads snapshot.
	threadsSeq, err := session.SendThreadsRequest(ctx)
	require.NoError(t, err)
	require.NoError(t, session.WaitForResponse(ctx, threadsSeq))
	require.NoError(t, data.HandleThreadsResponse(session, threadsSeq))
	require.Equal(t, []Thread{{ID: 1, Name: "main"}}, data.Threads())

	// Graceful shutdown by terminate.
	endSeq, err := session.EndSession(ctx, EndModeTerminate)
	require.NoError(t, err)
	require.NoError(t, session.WaitForResponse(ctx, endSeq))
	require.NoError(t, session.HandleTerminateResponse(endSeq))

	require.NoError(t, session.Close())
	require.True(t, adapter.closed)

	// Five requests went out with seqs 1..5.
	require.Len(t, adapter.sent, 5)
	for i, framed := range adapter.sent {
		_, body, _ := bytes.Cut(framed, []byte("\r\n\r\n"))
		require.Equal(t, int64(i+1), gjson.GetBytes(body, "seq").Int())
	}
}

// TestNewSession_RequiresAdapterOrTransport tests the construction
// precondition.
func TestNewSession_RequiresAdapterOrTransport(t *testing.T) {
	_, err := NewSession()
	require.ErrorContains(t, err, "adapter path required")

	session, err := NewSession(WithAdapterPath("dlv"), WithAdapterArgs("dap"))
	require.NoError(t, err)
	require.NotEmpty(t, session.ID())
}
