package bootloader

import (
	"errors"
	"fmt"
)

// TransportError indicates a socket-level failure: connection refused,
// timed out, or reset. It is distinct from a protocol.ProtocolError and is
// only ever retried inside a RetryPolicy handshake.
type TransportError struct {
	// Op is the phase that failed: "connect", "send", "receive" or "boot-request"
	Op string

	// Addr is the remote address
	Addr string

	// Err is the underlying network error
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError returns true if any error in the chain is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// VerifyMismatchError indicates a post-write readback disagreement. It
// identifies the first differing byte; later bytes are not checked.
type VerifyMismatchError struct {
	// Addr is the flash address of the mismatching byte
	Addr uint32

	// Wrote is the byte that was sent
	Wrote byte

	// Read is the byte that came back
	Read byte
}

func (e *VerifyMismatchError) Error() string {
	return fmt.Sprintf("verify mismatch at address 0x%08X: wrote 0x%02X, read 0x%02X",
		e.Addr, e.Wrote, e.Read)
}
