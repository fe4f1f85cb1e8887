package bootloader

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AirborneEngineering/blethrs/protocol"
)

// scriptedTransport fails a fixed number of attempts before succeeding.
type scriptedTransport struct {
	calls    int
	failures int
	status   protocol.Status
}

func (t *scriptedTransport) Interact(_ context.Context, _ []byte, _ time.Duration) ([]byte, error) {
	t.calls++
	if t.calls <= t.failures {
		return nil, &TransportError{Op: "connect", Addr: "device:7777", Err: errors.New("connection refused")}
	}
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(t.status))
	return b, nil
}

func TestHandshakeExhaustsAttempts(t *testing.T) {
	tr := &scriptedTransport{failures: 1000}
	policy := RetryPolicy{Attempts: 10, Delay: 5 * time.Millisecond, Timeout: time.Millisecond}

	start := time.Now()
	err := policy.Handshake(context.Background(), tr)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, IsTransportError(err))

	// Exactly the attempt budget, no more, and the settle delay was
	// honored before every attempt.
	assert.Equal(t, 10, tr.calls)
	assert.GreaterOrEqual(t, elapsed, 10*policy.Delay)
}

func TestHandshakeStopsOnFirstSuccess(t *testing.T) {
	tr := &scriptedTransport{failures: 2, status: protocol.StatusSuccess}
	policy := RetryPolicy{Attempts: 10, Delay: time.Millisecond, Timeout: time.Millisecond}

	require.NoError(t, policy.Handshake(context.Background(), tr))
	assert.Equal(t, 3, tr.calls)
}

func TestHandshakeImmediateSuccess(t *testing.T) {
	tr := &scriptedTransport{status: protocol.StatusSuccess}
	policy := DefaultRetryPolicy()
	policy.Delay = time.Millisecond

	require.NoError(t, policy.Handshake(context.Background(), tr))
	assert.Equal(t, 1, tr.calls)
}

func TestHandshakeDoesNotRetryProtocolErrors(t *testing.T) {
	// The listener answered; a rejected command means the bootloader is up
	// but unhappy, and retrying won't change that.
	tr := &scriptedTransport{status: protocol.ErrInternalError}
	policy := RetryPolicy{Attempts: 10, Delay: time.Millisecond, Timeout: time.Millisecond}

	err := policy.Handshake(context.Background(), tr)
	require.Error(t, err)
	assert.True(t, protocol.IsProtocolError(err))
	assert.Equal(t, 1, tr.calls)
}

// shortResponseTransport answers with a truncated frame a fixed number of
// times before returning a full success status word.
type shortResponseTransport struct {
	calls     int
	truncated int
}

func (t *shortResponseTransport) Interact(_ context.Context, _ []byte, _ time.Duration) ([]byte, error) {
	t.calls++
	if t.calls <= t.truncated {
		return []byte{0x00}, nil
	}
	return make([]byte, 4), nil
}

func TestHandshakeRetriesTruncatedResponses(t *testing.T) {
	// A response shorter than the status word means the link dropped
	// mid-exchange; the handshake keeps polling.
	tr := &shortResponseTransport{truncated: 2}
	policy := RetryPolicy{Attempts: 10, Delay: time.Millisecond, Timeout: time.Millisecond}

	require.NoError(t, policy.Handshake(context.Background(), tr))
	assert.Equal(t, 3, tr.calls)
}

func TestHandshakeTruncatedResponsesExhaust(t *testing.T) {
	tr := &shortResponseTransport{truncated: 1000}
	policy := RetryPolicy{Attempts: 5, Delay: time.Millisecond, Timeout: time.Millisecond}

	err := policy.Handshake(context.Background(), tr)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.Equal(t, 5, tr.calls)
}

func TestHandshakeContextCancellation(t *testing.T) {
	tr := &scriptedTransport{failures: 1000}
	policy := RetryPolicy{Attempts: 10, Delay: 50 * time.Millisecond, Timeout: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := policy.Handshake(ctx, tr)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, tr.calls, 10)
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 10, p.Attempts)
	assert.Equal(t, 500*time.Millisecond, p.Delay)
	assert.Equal(t, 500*time.Millisecond, p.Timeout)
}

func TestProgrammerHandshakeUsesConfiguredPolicy(t *testing.T) {
	tr := &scriptedTransport{failures: 1000}
	prog := New(tr, WithRetryPolicy(RetryPolicy{
		Attempts: 3,
		Delay:    time.Millisecond,
		Timeout:  time.Millisecond,
	}))

	err := prog.Handshake(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, tr.calls)
}
