package bootloader

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/AirborneEngineering/blethrs/netconf"
	"github.com/AirborneEngineering/blethrs/protocol"
)

// Segment is one bounded-size slice of a larger payload, transferred as a
// single Write command.
type Segment struct {
	// Addr is the flash address the slice is written to
	Addr uint32

	// Data is the slice contents
	Data []byte
}

// PlanSegments pads data with 0xFF (the erased-flash value) up to a
// multiple of 4 bytes, then splits it into chunkSize segments starting at
// addr. The last segment may be shorter. Segments are contiguous,
// non-overlapping, and their concatenation in address order is exactly the
// padded payload. A chunkSize below one word falls back to the default.
func PlanSegments(addr uint32, data []byte, chunkSize int) []Segment {
	if chunkSize < 4 {
		chunkSize = protocol.DefaultChunkSize
	}
	if pad := len(data) % 4; pad != 0 {
		padded := make([]byte, len(data), len(data)+4-pad)
		copy(padded, data)
		padded = append(padded, bytes.Repeat([]byte{0xFF}, 4-pad)...)
		data = padded
	}

	count := len(data) / chunkSize
	if len(data)%chunkSize != 0 {
		count++
	}

	segments := make([]Segment, 0, count)
	for i := 0; i < count; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		segments = append(segments, Segment{
			Addr: addr + uint32(start),
			Data: data[start:end],
		})
	}
	return segments
}

// WriteAndVerify erases the target range, writes data in chunks, then reads
// every chunk back and compares it byte-for-byte.
//
// Segments are written in descending address order: the segment holding the
// image's entry vector at the base address goes last, so an interrupted
// transfer can never leave a valid-looking vector in front of an incomplete
// image. Readback runs in ascending order. The first differing byte aborts
// the verify with a *VerifyMismatchError naming its exact address; any
// non-success status from Erase, Write or Read aborts the whole operation
// immediately with no per-segment retry.
func (p *Programmer) WriteAndVerify(ctx context.Context, addr uint32, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("no data to write")
	}

	segments := PlanSegments(addr, data, p.config.ChunkSize)
	padded := 0
	for _, seg := range segments {
		padded += len(seg.Data)
	}

	start := time.Now()

	if p.config.Logger != nil {
		p.config.Logger.Info().
			Str("addr", fmt.Sprintf("0x%08X", addr)).
			Int("length", padded).
			Int("segments", len(segments)).
			Msg("erasing target range")
	}
	p.reportProgress(Progress{
		Phase:         PhaseErasing,
		TotalSegments: len(segments),
	})
	if err := p.Erase(ctx, addr, uint32(padded)); err != nil {
		return err
	}

	written := 0
	for i := len(segments) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		seg := segments[i]
		if err := p.Write(ctx, seg.Addr, seg.Data); err != nil {
			return err
		}

		written += len(seg.Data)
		p.reportProgress(Progress{
			Phase:          PhaseWriting,
			CurrentSegment: len(segments) - i,
			TotalSegments:  len(segments),
			Percentage:     float64(written) * 100 / float64(padded),
			BytesDone:      written,
			ElapsedTime:    time.Since(start),
		})
	}

	read := 0
	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		got, err := p.Read(ctx, seg.Addr, uint32(len(seg.Data)))
		if err != nil {
			return err
		}
		if err := compareSegment(seg, got); err != nil {
			return err
		}

		read += len(seg.Data)
		p.reportProgress(Progress{
			Phase:          PhaseReading,
			CurrentSegment: i + 1,
			TotalSegments:  len(segments),
			Percentage:     float64(read) * 100 / float64(padded),
			BytesDone:      read,
			ElapsedTime:    time.Since(start),
		})
	}

	p.reportProgress(Progress{
		Phase:          PhaseComplete,
		CurrentSegment: len(segments),
		TotalSegments:  len(segments),
		Percentage:     100,
		BytesDone:      padded,
		ElapsedTime:    time.Since(start),
	})

	if p.config.Logger != nil {
		p.config.Logger.Info().
			Int("bytes", padded).
			Int("segments", len(segments)).
			Str("elapsed", time.Since(start).String()).
			Msg("write and verify complete")
	}
	return nil
}

// WriteConfig flashes a network configuration record at addr using the same
// erase, write, readback, compare sequence as WriteAndVerify, as a single
// 24-byte segment. The comparison covers the whole record including the
// freshly computed CRC field.
func (p *Programmer) WriteConfig(ctx context.Context, addr uint32, rec *netconf.Record) error {
	raw := rec.Encode()

	if p.config.Logger != nil {
		p.config.Logger.Info().
			Str("addr", fmt.Sprintf("0x%08X", addr)).
			Str("record", rec.String()).
			Msg("writing configuration")
	}

	if err := p.Erase(ctx, addr, uint32(len(raw))); err != nil {
		return err
	}
	if err := p.Write(ctx, addr, raw); err != nil {
		return err
	}

	got, err := p.Read(ctx, addr, uint32(len(raw)))
	if err != nil {
		return err
	}
	return compareSegment(Segment{Addr: addr, Data: raw}, got)
}

// ReadRange reads length bytes at addr in chunkSize pieces, ascending.
// Length must be a multiple of 4.
func (p *Programmer) ReadRange(ctx context.Context, addr, length uint32) ([]byte, error) {
	if length%4 != 0 {
		return nil, fmt.Errorf("read length must be a multiple of 4, got %d", length)
	}

	out := make([]byte, 0, length)
	chunk := uint32(p.config.ChunkSize)
	for off := uint32(0); off < length; off += chunk {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("cancelled: %w", err)
		}

		n := chunk
		if off+n > length {
			n = length - off
		}
		data, err := p.Read(ctx, addr+off, n)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)

		p.reportProgress(Progress{
			Phase:      PhaseReading,
			Percentage: float64(off+n) * 100 / float64(length),
			BytesDone:  int(off + n),
		})
	}
	return out, nil
}

// compareSegment byte-compares a readback buffer against the written
// segment, stopping at the first mismatch.
func compareSegment(seg Segment, got []byte) error {
	if len(got) > len(seg.Data) {
		got = got[:len(seg.Data)]
	}
	if bytes.Equal(seg.Data, got) {
		return nil
	}
	for i := range seg.Data {
		if i >= len(got) || seg.Data[i] != got[i] {
			var read byte
			if i < len(got) {
				read = got[i]
			}
			return &VerifyMismatchError{
				Addr:  seg.Addr + uint32(i),
				Wrote: seg.Data[i],
				Read:  read,
			}
		}
	}
	return nil
}
