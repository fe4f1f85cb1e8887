package bootloader

import (
	"context"
	"time"

	"github.com/AirborneEngineering/blethrs/protocol"
)

// RetryPolicy describes the bounded retry loop used to wait for the
// bootloader's listener after a reboot. Attempt latency is already large
// relative to the expected reboot time and the budget is small, so this is
// a fixed-count loop rather than exponential backoff.
type RetryPolicy struct {
	// Attempts is the total number of tries before giving up
	Attempts int

	// Delay is the settle interval before each attempt, covering the
	// device reboot and link renegotiation
	Delay time.Duration

	// Timeout bounds each individual attempt
	Timeout time.Duration
}

// DefaultRetryPolicy returns the handshake policy used unless overridden:
// 10 attempts, 500ms settle, 500ms per-attempt timeout.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 10,
		Delay:    500 * time.Millisecond,
		Timeout:  500 * time.Millisecond,
	}
}

// Handshake polls the bootloader with Info commands until one succeeds or
// the attempt budget is exhausted. Transport failures, including truncated
// responses, are suppressed and retried on every attempt except the last,
// whose failure is returned as-is. A ProtocolError is never retried: the
// listener is up, it just rejected the command.
func (p RetryPolicy) Handshake(ctx context.Context, t Transport) error {
	frame := protocol.BuildInfoCmd()

	for attempt := 0; attempt < p.Attempts; attempt++ {
		if err := sleepCtx(ctx, p.Delay); err != nil {
			return err
		}

		resp, err := t.Interact(ctx, frame, p.Timeout)
		if err == nil {
			_, err = protocol.CheckResponse("info", resp)
			if err == nil || protocol.IsProtocolError(err) {
				return err
			}
			// A truncated response means the link failed mid-exchange;
			// retry it like any other transport failure.
			err = &TransportError{Op: "receive", Err: err}
		}
		if attempt == p.Attempts-1 {
			return err
		}
	}

	// Attempts <= 0; treat as immediately exhausted.
	return &TransportError{Op: "handshake", Err: context.DeadlineExceeded}
}

// sleepCtx sleeps for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
