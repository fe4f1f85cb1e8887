package bootloader

import (
	"context"
	"net"
	"time"

	"github.com/AirborneEngineering/blethrs/protocol"
)

// Transport performs one request/response exchange with the bootloader.
// Implementations own whatever connection they use for the exchange and
// must release it on every exit path before returning.
type Transport interface {
	// Interact sends frame, waits for a single response and returns its raw
	// bytes. The timeout bounds the whole exchange. Socket-level failures
	// are returned as *TransportError.
	Interact(ctx context.Context, frame []byte, timeout time.Duration) ([]byte, error)
}

// TCPTransport exchanges frames with the bootloader's TCP command port.
// Each Interact opens a fresh connection, performs exactly one
// send/receive, and closes it: the bootloader serves one command per
// connection.
type TCPTransport struct {
	// Addr is the bootloader's host:port
	Addr string

	// SettleDelay is a pause after closing the connection, giving the
	// embedded TCP stack time to tear down before the next connect. This
	// is a pragmatic wait, not a correctness requirement; set it to zero
	// if the device tolerates rapid reconnects.
	SettleDelay time.Duration
}

// DefaultSettleDelay is the post-close pause applied by NewTCPTransport.
const DefaultSettleDelay = 10 * time.Millisecond

// NewTCPTransport returns a TCPTransport for the given host:port with the
// default settle delay.
func NewTCPTransport(addr string) *TCPTransport {
	return &TCPTransport{Addr: addr, SettleDelay: DefaultSettleDelay}
}

// Interact implements Transport.
func (t *TCPTransport) Interact(ctx context.Context, frame []byte, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)

	d := net.Dialer{Deadline: deadline}
	conn, err := d.DialContext(ctx, "tcp", t.Addr)
	if err != nil {
		return nil, &TransportError{Op: "connect", Addr: t.Addr, Err: err}
	}
	defer func() {
		conn.Close()
		if t.SettleDelay > 0 {
			time.Sleep(t.SettleDelay)
		}
	}()

	if err := conn.SetDeadline(deadline); err != nil {
		return nil, &TransportError{Op: "connect", Addr: t.Addr, Err: err}
	}

	if _, err := conn.Write(frame); err != nil {
		return nil, &TransportError{Op: "send", Addr: t.Addr, Err: err}
	}

	// Responses are small and never fragmented across reads, so a single
	// receive up to the protocol ceiling captures the whole response.
	buf := make([]byte, protocol.MaxResponseSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, &TransportError{Op: "receive", Addr: t.Addr, Err: err}
	}

	return buf[:n], nil
}

// SendBootRequest sends the reboot-to-bootloader datagram to the running
// user application at the given UDP host:port. This is fire-and-forget: no
// response is expected or read, and a compliant application reboots into
// the bootloader shortly after.
func SendBootRequest(addr string) error {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return &TransportError{Op: "boot-request", Addr: addr, Err: err}
	}
	defer conn.Close()

	if _, err := conn.Write(protocol.BuildBootRequest()); err != nil {
		return &TransportError{Op: "boot-request", Addr: addr, Err: err}
	}
	return nil
}
