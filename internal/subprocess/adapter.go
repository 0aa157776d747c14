package subprocess

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/dap-sdk-go/internal/config"
	"github.com/wagiedev/dap-sdk-go/internal/errors"
	"github.com/wagiedev/dap-sdk-go/internal/wire"
)

const (
	// maxHeaderLineSize bounds a single frame header line.
	maxHeaderLineSize = 8 * 1024
	// maxMessageSize bounds a single frame body.
	maxMessageSize = 16 * 1024 * 1024 // 16MB
	// maxStderrBufferSize is the maximum size for the stderr buffer.
	// Stderr reading continues indefinitely (callback receives all lines),
	// but the buffer stops growing after this limit to prevent unbounded
	// memory usage.
	maxStderrBufferSize = 10 * 1024 * 1024 // 10MB
)

// AdapterTransport implements Transport by spawning a debug adapter
// subprocess and framing messages over its standard streams.
type AdapterTransport struct {
	log     *slog.Logger
	options *config.Options
	path    string
	args    []string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  io.ReadCloser
	stderr  io.ReadCloser

	group    *errgroup.Group
	messages chan wire.Value
	readErr  chan error

	// next holds a message claimed by MessageExists but not yet consumed
	// by ReadMessage. Accessed only from the session's control thread.
	next    *wire.Value
	eof     bool
	procErr error

	mu          sync.Mutex // protects stdin writes and close state
	closing     bool
	stdinClosed bool
}

// Compile-time verification that AdapterTransport implements Transport.
var _ config.Transport = (*AdapterTransport)(nil)

// NewAdapterTransport creates a transport for the adapter configured in
// options.
//
// The logger is used for operation tracking and debugging. It will receive
// debug, info, warn, and error messages during transport operations.
// Process spawning is deferred to Start().
func NewAdapterTransport(log *slog.Logger, options *config.Options) *AdapterTransport {
	return &AdapterTransport{
		log:      log.With("component", "adapter_transport"),
		options:  options,
		messages: make(chan wire.Value, 64),
		readErr:  make(chan error, 1),
	}
}

// Start spawns the adapter subprocess.
//
// The adapter binary is the explicit path in options.AdapterPath, resolved
// against PATH when it carries no directory separator. Stdin, stdout, and
// stderr pipes are wired up and the background frame reader is started.
//
// Returns AdapterNotFoundError if the binary cannot be located, or
// AdapterConnectionError if the process fails to start.
func (t *AdapterTransport) Start(ctx context.Context) error {
	t.log.Info("Starting debug adapter subprocess", "path", t.options.AdapterPath)

	path := t.options.AdapterPath

	if !strings.ContainsRune(path, os.PathSeparator) {
		resolved, err := exec.LookPath(path)
		if err != nil {
			return &errors.AdapterNotFoundError{Path: path, Err: err}
		}

		path = resolved
	} else if _, err := os.Stat(path); err != nil {
		return &errors.AdapterNotFoundError{Path: path, Err: err}
	}

	t.path = path
	t.args = t.options.AdapterArgs

	//nolint:gosec // G204: Subprocess launching with dynamic args is expected for adapter invocation
	cmd := exec.CommandContext(ctx, t.path, t.args...)
	cmd.Dir = t.options.Cwd
	cmd.Env = buildEnvironment(t.options.Env)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		t.log.Error("Failed to create stdin pipe", "error", err)

		return &errors.AdapterConnectionError{Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	t.stdin = stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		t.log.Error("Failed to create stdout pipe", "error", err)

		return &errors.AdapterConnectionError{Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	t.stdout = stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		t.log.Error("Failed to create stderr pipe", "error", err)

		return &errors.AdapterConnectionError{Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	t.stderr = stderr

	if err := cmd.Start(); err != nil {
		t.log.Error("Failed to start adapter process", "error", err)

		return &errors.AdapterConnectionError{Err: fmt.Errorf("start process: %w", err)}
	}

	t.cmd = cmd
	t.log.Info("Debug adapter subprocess started", "pid", cmd.Process.Pid)

	t.startReaders(ctx)

	return nil
}

// startReaders launches the stdout frame reader and stderr line reader.
func (t *AdapterTransport) startReaders(ctx context.Context) {
	group, ctx := errgroup.WithContext(ctx)
	t.group = group

	var (
		stderrBuffer strings.Builder
		stderrMu     sync.Mutex
	)

	group.Go(func() error {
		// Relies on process kill to close the pipe and unblock Scan().
		scanner := bufio.NewScanner(t.stderr)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			line := scanner.Text()

			stderrMu.Lock()

			if stderrBuffer.Len() < maxStderrBufferSize {
				if stderrBuffer.Len() > 0 {
					stderrBuffer.WriteString("\n")
				}

				stderrBuffer.WriteString(line)
			}

			stderrMu.Unlock()

			if t.options.Stderr != nil {
				t.options.Stderr(line)
			}
		}

		if err := scanner.Err(); err != nil {
			t.log.Debug("Stderr scanner error", "error", err)
		}

		return nil
	})

	group.Go(func() error {
		defer close(t.messages)
		defer t.log.Debug("Frame reader stopped")

		reader := bufio.NewReader(t.stdout)
		messageCount := 0

		for {
			value, err := readFrame(reader)
			if err != nil {
				if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
					t.finishRead(&stderrBuffer, &stderrMu)

					return nil
				}

				t.log.Error("Frame read error", "error", err)
				t.readErr <- err

				return nil
			}

			messageCount++
			t.log.Debug("Received message from adapter", "message_count", messageCount)

			select {
			case t.messages <- value:
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// finishRead waits for the adapter process after its stdout closed and
// records a ProcessError when the exit was not an intentional shutdown.
func (t *AdapterTransport) finishRead(stderrBuffer *strings.Builder, stderrMu *sync.Mutex) {
	t.log.Debug("Adapter stdout closed, waiting for process exit")

	err := t.cmd.Wait()
	if err == nil {
		t.log.Info("Adapter process exited successfully")

		return
	}

	t.mu.Lock()
	isClosing := t.closing
	t.mu.Unlock()

	if isClosing {
		t.log.Debug("Adapter process terminated during shutdown")

		return
	}

	stderrMu.Lock()
	stderrOutput := stderrBuffer.String()
	stderrMu.Unlock()

	exitCode := 0

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	t.log.Error("Adapter process exited with error", "exit_code", exitCode, "stderr", stderrOutput)

	t.readErr <- &errors.ProcessError{
		ExitCode: exitCode,
		Stderr:   stderrOutput,
		Err:      err,
	}
}

// MessageExists polls for a complete incoming message, waiting at most
// timeout. A claimed message is held until ReadMessage consumes it.
//
// Once the adapter's output stream ends this returns ErrEndOfStream
// (wrapping the process failure, if any) on every call. End of stream is
// terminal: the adapter is gone and the session cannot be revived.
func (t *AdapterTransport) MessageExists(ctx context.Context, timeout time.Duration) (bool, error) {
	if t.next != nil {
		return true, nil
	}

	if t.eof {
		return false, t.endOfStream()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg, ok := <-t.messages:
		if !ok {
			t.markEOF()

			return false, t.endOfStream()
		}

		t.next = &msg

		return true, nil

	case err := <-t.readErr:
		t.markEOF()
		t.procErr = err

		return false, t.endOfStream()

	case <-timer.C:
		return false, nil

	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// ReadMessage returns the message claimed by the last MessageExists call,
// or the next buffered one. ErrNoMessage when neither exists.
func (t *AdapterTransport) ReadMessage(ctx context.Context) (wire.Value, error) {
	if t.next != nil {
		msg := *t.next
		t.next = nil

		return msg, nil
	}

	if t.eof {
		return wire.Value{}, t.endOfStream()
	}

	select {
	case msg, ok := <-t.messages:
		if !ok {
			t.markEOF()

			return wire.Value{}, t.endOfStream()
		}

		return msg, nil

	case <-ctx.Done():
		return wire.Value{}, ctx.Err()

	default:
		return wire.Value{}, errors.ErrNoMessage
	}
}

// markEOF records that the adapter's output stream ended, draining any
// pending process error.
func (t *AdapterTransport) markEOF() {
	t.eof = true

	select {
	case err := <-t.readErr:
		t.procErr = err
	default:
	}
}

func (t *AdapterTransport) endOfStream() error {
	if t.procErr != nil {
		return fmt.Errorf("%w: %w", errors.ErrEndOfStream, t.procErr)
	}

	return errors.ErrEndOfStream
}

// SendMessage writes an already-framed message to the adapter's stdin.
//
// This method is safe for concurrent use and respects context cancellation
// even during blocking writes. If the context is cancelled during a
// blocked write, stdin is closed to unblock the writer; subsequent calls
// return ErrStdinClosed.
func (t *AdapterTransport) SendMessage(ctx context.Context, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stdin == nil {
		return errors.ErrTransportNotConnected
	}

	if t.stdinClosed {
		return errors.ErrStdinClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.log.Debug("Sending message to adapter", "data_len", len(data))

	done := make(chan error, 1)

	go func() {
		_, err := t.stdin.Write(data)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.log.Error("Failed to write message to adapter", "error", err)

			return fmt.Errorf("write to stdin: %w", err)
		}

		return nil

	case <-ctx.Done():
		t.log.Debug("Context cancelled during write, closing stdin")

		_ = t.stdin.Close()
		t.stdinClosed = true

		select {
		case <-done:
		case <-time.After(1 * time.Second):
			t.log.Warn("Write goroutine did not exit after stdin close, potential leak")
		}

		return ctx.Err()
	}
}

// Close terminates the adapter process.
//
// This forcefully kills the process. It's safe to call Close multiple
// times or on an already-terminated process.
func (t *AdapterTransport) Close() error {
	t.mu.Lock()
	t.closing = true
	t.stdinClosed = true
	cmd := t.cmd
	t.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		t.log.Debug("Killing adapter process", "pid", cmd.Process.Pid)

		if err := cmd.Process.Kill(); err != nil {
			return fmt.Errorf("kill adapter process (pid %d): %w", cmd.Process.Pid, err)
		}
	}

	// Killing the process closes its pipes, which unblocks the readers.
	if t.group != nil {
		_ = t.group.Wait()
	}

	return nil
}

// EncodeMessage frames a generic object as a complete wire message:
// a Content-Length header, a blank line, then the JSON body.
func EncodeMessage(obj *wire.Object) ([]byte, error) {
	body, err := obj.MarshalJSON()
	if err != nil {
		return nil, err
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	framed := make([]byte, 0, len(header)+len(body))
	framed = append(framed, header...)
	framed = append(framed, body...)

	return framed, nil
}

// readFrame reads one Content-Length framed message and parses its body.
func readFrame(reader *bufio.Reader) (wire.Value, error) {
	contentLength := -1

	for {
		line, err := readHeaderLine(reader)
		if err != nil {
			return wire.Value{}, err
		}

		if line == "" {
			break
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			return wire.Value{}, fmt.Errorf("malformed frame header %q", line)
		}

		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			length, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return wire.Value{}, fmt.Errorf("malformed Content-Length %q: %w", value, err)
			}

			contentLength = length
		}
	}

	if contentLength < 0 {
		return wire.Value{}, fmt.Errorf("frame missing Content-Length header")
	}

	if contentLength > maxMessageSize {
		return wire.Value{}, fmt.Errorf("frame of %d bytes exceeds limit", contentLength)
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(reader, body); err != nil {
		return wire.Value{}, err
	}

	var value wire.Value
	if err := value.UnmarshalJSON(body); err != nil {
		return wire.Value{}, &errors.InvalidMessageError{
			Reason:  "body is not valid JSON",
			RawData: string(body),
		}
	}

	return value, nil
}

// readHeaderLine reads one CRLF-terminated header line, without the CRLF.
func readHeaderLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	if len(line) > maxHeaderLineSize {
		return "", fmt.Errorf("frame header line exceeds %d bytes", maxHeaderLineSize)
	}

	// Headers are CRLF-terminated; tolerate bare LF from lax adapters.
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// buildEnvironment merges extra variables over the current environment.
func buildEnvironment(extra map[string]string) []string {
	env := os.Environ()
	for key, value := range extra {
		env = append(env, key+"="+value)
	}

	return env
}
