package bootloader

import (
	"context"
	"fmt"
	"time"

	"github.com/AirborneEngineering/blethrs/protocol"
)

// Programmer drives the bootloader's command protocol over a Transport.
// All operations are strictly sequential: each blocks until its exchange
// completes or times out, and no two exchanges are ever in flight at once.
type Programmer struct {
	transport Transport
	config    Config
}

// New creates a Programmer over the given transport.
//
// Example:
//
//	t := bootloader.NewTCPTransport("10.1.1.10:7777")
//	prog := bootloader.New(t,
//	    bootloader.WithChunkSize(1024),
//	    bootloader.WithProgressCallback(progressFunc),
//	)
func New(t Transport, opts ...Option) *Programmer {
	if t == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Programmer{
		transport: t,
		config:    cfg,
	}
}

// interact performs one exchange and checks the response status, converting
// a non-success status into a *ProtocolError named after op.
func (p *Programmer) interact(ctx context.Context, op string, frame []byte, timeout time.Duration) ([]byte, error) {
	resp, err := p.transport.Interact(ctx, frame, timeout)
	if err != nil {
		return nil, err
	}
	return protocol.CheckResponse(op, resp)
}

// Info requests the bootloader's build description.
func (p *Programmer) Info(ctx context.Context) (string, error) {
	payload, err := p.interact(ctx, "info", protocol.BuildInfoCmd(), p.config.Timeout)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// Read reads length bytes of flash at addr. The length must be a multiple
// of 4 and must fit in a single response.
func (p *Programmer) Read(ctx context.Context, addr, length uint32) ([]byte, error) {
	frame, err := protocol.BuildReadCmd(addr, length)
	if err != nil {
		return nil, err
	}

	payload, err := p.interact(ctx, "read", frame, p.config.Timeout)
	if err != nil {
		return nil, err
	}
	if uint32(len(payload)) != length {
		return nil, fmt.Errorf("read returned %d bytes, requested %d", len(payload), length)
	}

	if p.config.Logger != nil {
		p.config.Logger.Debug().
			Str("addr", fmt.Sprintf("0x%08X", addr)).
			Int("length", int(length)).
			Msg("read")
	}
	return payload, nil
}

// Erase erases length bytes of flash at addr. Sector erase is slow, so this
// uses the extended erase timeout.
func (p *Programmer) Erase(ctx context.Context, addr, length uint32) error {
	frame, err := protocol.BuildEraseCmd(addr, length)
	if err != nil {
		return err
	}

	if p.config.Logger != nil {
		p.config.Logger.Debug().
			Str("addr", fmt.Sprintf("0x%08X", addr)).
			Int("length", int(length)).
			Msg("erase")
	}
	_, err = p.interact(ctx, "erase", frame, p.config.EraseTimeout)
	return err
}

// Write writes data to flash at addr. The data must be a non-empty multiple
// of 4 bytes; large images should go through WriteAndVerify instead, which
// chunks, orders and verifies the transfer.
func (p *Programmer) Write(ctx context.Context, addr uint32, data []byte) error {
	frame, err := protocol.BuildWriteCmd(addr, data)
	if err != nil {
		return err
	}

	if p.config.Logger != nil {
		p.config.Logger.Debug().
			Str("addr", fmt.Sprintf("0x%08X", addr)).
			Int("length", len(data)).
			Msg("write")
	}
	_, err = p.interact(ctx, "write", frame, p.config.Timeout)
	return err
}

// Boot asks the bootloader to reboot into the loaded user firmware.
func (p *Programmer) Boot(ctx context.Context) error {
	_, err := p.interact(ctx, "boot", protocol.BuildBootCmd(), p.config.Timeout)
	return err
}

// Handshake polls the bootloader's command port until it answers an Info
// command, using the configured retry policy. Call it after a boot request
// kick, or whenever the bootloader may still be coming up.
func (p *Programmer) Handshake(ctx context.Context) error {
	p.reportProgress(Progress{Phase: PhaseHandshake})

	if err := p.config.Retry.Handshake(ctx, p.transport); err != nil {
		return err
	}

	if p.config.Logger != nil {
		p.config.Logger.Debug().Msg("bootloader responding")
	}
	return nil
}

// reportProgress calls the progress callback if configured.
func (p *Programmer) reportProgress(progress Progress) {
	if p.config.ProgressCallback != nil {
		p.config.ProgressCallback(progress)
	}
}
