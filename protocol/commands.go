package protocol

import (
	"encoding/binary"
	"fmt"
)

// BuildInfoCmd constructs an Info command frame.
//
// Frame structure:
//
//	[CMD(4)]
//
// The success response payload is a UTF-8 build description.
func BuildInfoCmd() []byte {
	frame := make([]byte, 4)
	binary.LittleEndian.PutUint32(frame, CmdInfo)
	return frame
}

// BuildBootCmd constructs a Boot command frame. On success the bootloader
// reboots into the loaded user firmware and no further commands are served.
//
// Frame structure:
//
//	[CMD(4)]
func BuildBootCmd() []byte {
	frame := make([]byte, 4)
	binary.LittleEndian.PutUint32(frame, CmdBoot)
	return frame
}

// BuildReadCmd constructs a Read command frame for length bytes at addr.
//
// Frame structure:
//
//	[CMD(4)][ADDR(4)][LENGTH(4)]
//
// The success response payload is exactly length raw bytes. The requested
// length plus the status word must fit under MaxResponseSize, since the
// whole response is consumed in a single receive.
func BuildReadCmd(addr, length uint32) ([]byte, error) {
	if length%4 != 0 {
		return nil, fmt.Errorf("read length must be a multiple of 4, got %d", length)
	}
	if length+StatusLen > MaxResponseSize {
		return nil, fmt.Errorf("read length %d exceeds response ceiling of %d bytes",
			length, MaxResponseSize-StatusLen)
	}

	frame := make([]byte, 12)
	binary.LittleEndian.PutUint32(frame[0:4], CmdRead)
	binary.LittleEndian.PutUint32(frame[4:8], addr)
	binary.LittleEndian.PutUint32(frame[8:12], length)
	return frame, nil
}

// BuildEraseCmd constructs an Erase command frame for length bytes at addr.
//
// Frame structure:
//
//	[CMD(4)][ADDR(4)][LENGTH(4)]
//
// The bootloader erases every sector overlapping the range, so the erased
// region may extend beyond it.
func BuildEraseCmd(addr, length uint32) ([]byte, error) {
	if length%4 != 0 {
		return nil, fmt.Errorf("erase length must be a multiple of 4, got %d", length)
	}

	frame := make([]byte, 12)
	binary.LittleEndian.PutUint32(frame[0:4], CmdErase)
	binary.LittleEndian.PutUint32(frame[4:8], addr)
	binary.LittleEndian.PutUint32(frame[8:12], length)
	return frame, nil
}

// BuildWriteCmd constructs a Write command frame placing data at addr.
// The declared length field always equals len(data); flash writes are
// word-by-word so data must be a multiple of 4 bytes.
//
// Frame structure:
//
//	[CMD(4)][ADDR(4)][LENGTH(4)][DATA...]
func BuildWriteCmd(addr uint32, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("write data cannot be empty")
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("write data must be a multiple of 4 bytes, got %d", len(data))
	}

	frame := make([]byte, 12, 12+len(data))
	binary.LittleEndian.PutUint32(frame[0:4], CmdWrite)
	binary.LittleEndian.PutUint32(frame[4:8], addr)
	binary.LittleEndian.PutUint32(frame[8:12], uint32(len(data)))
	frame = append(frame, data...)
	return frame, nil
}

// BuildBootRequest constructs the UDP boot-request datagram understood by
// the running user application (not by the bootloader).
//
// Datagram structure:
//
//	[MAGIC(4)]
func BuildBootRequest() []byte {
	frame := make([]byte, 4)
	binary.LittleEndian.PutUint32(frame, BootRequestMagic)
	return frame
}
