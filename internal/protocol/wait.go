package protocol

import (
	"context"
	"time"

	"github.com/wagiedev/dap-sdk-go/internal/config"
)

// pollInterval returns the configured wait-helper poll interval.
func (s *Session) pollInterval() time.Duration {
	if s.options.PollInterval > 0 {
		return s.options.PollInterval
	}

	return config.DefaultPollInterval
}

// WaitForResponse polls the transport at a fixed interval until the
// response matching seq is pending.
//
// There is no internal deadline: the loop runs until the response
// arrives, the adapter dies, or ctx is cancelled. Callers that need a
// bounded wait should interleave QueueMessages with their own deadline
// check instead.
func (s *Session) WaitForResponse(ctx context.Context, seq int32) error {
	for {
		exists, err := s.responsePending(seq)
		if err != nil {
			return err
		}

		if exists {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.QueueMessages(ctx, s.pollInterval()); err != nil {
			return err
		}
	}
}

// WaitForEvent polls the transport at a fixed interval until an event
// with the given name is pending. Same caveats as WaitForResponse.
func (s *Session) WaitForEvent(ctx context.Context, name string) error {
	for {
		for _, msg := range s.pendingEvents {
			if event, ok := msg.GetString("event"); ok && event == name {
				return nil
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.QueueMessages(ctx, s.pollInterval()); err != nil {
			return err
		}
	}
}

// responsePending reports whether a response with the given request_seq
// is queued.
func (s *Session) responsePending(seq int32) (bool, error) {
	for _, msg := range s.pendingResponses {
		requestSeq, err := seqField(msg, "request_seq")
		if err != nil {
			return false, err
		}

		if requestSeq == int64(seq) {
			return true, nil
		}
	}

	return false, nil
}
