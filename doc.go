// Package dapsdk provides a Go client SDK for the Debug Adapter Protocol.
//
// The SDK launches a debug adapter as a subprocess, negotiates
// capabilities through the initialize handshake, and correlates the
// adapter's asynchronous responses and events against in-memory queues.
// It is a protocol engine, not a debugger UI: a rendering layer consumes
// its queues and cached projections.
//
// # Basic Usage
//
//	ctx := context.Background()
//
//	session, err := dapsdk.NewSession(
//	    dapsdk.WithAdapterPath("dlv"),
//	    dapsdk.WithAdapterArgs("dap"),
//	    dapsdk.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	if err := session.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	seq, err := session.SendInitializeRequest(ctx, &dapsdk.InitializeArguments{
//	    AdapterID:       "go",
//	    LinesStartAt1:   true,
//	    ColumnsStartAt1: true,
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := session.WaitForResponse(ctx, seq); err != nil {
//	    log.Fatal(err)
//	}
//	if err := session.HandleInitializeResponse(seq); err != nil {
//	    log.Fatal(err)
//	}
//
// Adapter-specific launch settings ride along as extra fields without
// widening the typed arguments:
//
//	extra := dapsdk.NewObject()
//	extra.Set("mode", dapsdk.String("debug"))
//	extra.Set("program", dapsdk.String("./cmd/server"))
//
//	seq, err = session.SendLaunchRequest(ctx, &dapsdk.LaunchArguments{}, extra)
//
// # Derived state
//
// SessionData projects module events and threads responses into a
// deduplicated, string-interned snapshot for read-only consumers:
//
//	data := dapsdk.NewSessionData(slog.Default())
//	if err := data.HandleThreadsResponse(session, threadsSeq); err != nil {
//	    log.Fatal(err)
//	}
//	for _, t := range data.Threads() {
//	    fmt.Println(t.ID, t.Name)
//	}
//
// # Concurrency
//
// A session is single-threaded and cooperative. One control thread polls
// QueueMessages with a bounded timeout, dispatches whatever was queued,
// and yields. The wait helpers block without an internal deadline; cancel
// their context to abort.
package dapsdk
