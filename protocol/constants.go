package protocol

import "time"

// Command codes understood by the bootloader. Each request frame starts
// with the command as a little-endian u32.
const (
	// CmdInfo requests a human-readable build/device description
	CmdInfo uint32 = 0

	// CmdRead reads a region of flash
	CmdRead uint32 = 1

	// CmdErase erases a region of flash
	CmdErase uint32 = 2

	// CmdWrite writes a region of flash
	CmdWrite uint32 = 3

	// CmdBoot reboots into the loaded user firmware
	CmdBoot uint32 = 4
)

// Status codes returned by the bootloader in the first 4 bytes of every
// response. The assignment is fixed by the firmware build; do not renumber.
const (
	// StatusSuccess indicates the command was executed
	StatusSuccess Status = 0

	// ErrInvalidAddress indicates the address is outside writable flash
	ErrInvalidAddress Status = 1

	// ErrLengthNotMultiple4 indicates the length is not word-aligned
	ErrLengthNotMultiple4 Status = 2

	// ErrLengthTooLong indicates the length exceeds the addressed region
	ErrLengthTooLong Status = 3

	// ErrDataLengthIncorrect indicates the declared and received lengths differ
	ErrDataLengthIncorrect Status = 4

	// ErrEraseError indicates the flash erase operation failed
	ErrEraseError Status = 5

	// ErrWriteError indicates the flash write operation failed
	ErrWriteError Status = 6

	// ErrFlashError indicates the flash controller reported an error
	ErrFlashError Status = 7

	// ErrNetworkError indicates the device-side network stack failed
	ErrNetworkError Status = 8

	// ErrInternalError indicates an unexpected device-side condition
	ErrInternalError Status = 9
)

// StatusLen is the size of the status field that precedes every response
// payload.
const StatusLen = 4

// BootRequestMagic is the reserved request code sent as a single 4-byte
// little-endian UDP datagram to ask the running application to reboot into
// the bootloader. The bootloader itself never sees this value.
const BootRequestMagic uint32 = 28

// Network defaults for the bootloader's TCP command port and the
// application's UDP boot-request port.
const (
	// DefaultPort is the TCP port the bootloader listens on
	DefaultPort = 7777

	// DefaultBootRequestPort is the UDP port the user application listens on
	DefaultBootRequestPort = 1735
)

// Transfer defaults.
const (
	// DefaultChunkSize is the flash write segment size in bytes
	DefaultChunkSize = 512

	// MaxResponseSize is the receive ceiling for a single response.
	// Responses are never fragmented across reads, so Read payloads must
	// fit under this together with the status word.
	MaxResponseSize = 2048

	// DefaultTimeout bounds one complete request/response exchange
	DefaultTimeout = 2 * time.Second

	// EraseTimeout bounds an Erase exchange; sector erase is slow on
	// embedded flash
	EraseTimeout = 20 * time.Second
)

// ConfigMagic is the magic word at the start of a network configuration
// record ("pxyg" in little-endian ASCII).
const ConfigMagic uint32 = 0x67797870

// STM32F405/407 flash layout. Sector boundaries matter because erases
// operate on whole sectors; the configuration record and user firmware
// conventionally live in their own sectors.
var FlashSectorAddresses = [12]uint32{
	0x0800_0000, 0x0800_4000, 0x0800_8000, 0x0800_C000,
	0x0801_0000, 0x0802_0000, 0x0804_0000, 0x0806_0000,
	0x0808_0000, 0x080A_0000, 0x080C_0000, 0x080E_0000,
}

const (
	// FlashEnd is the final valid flash address
	FlashEnd uint32 = 0x080F_FFFF

	// DefaultConfigAddr is the conventional configuration sector address
	DefaultConfigAddr uint32 = 0x0800_C000

	// DefaultUserAddr is the conventional user firmware load address
	DefaultUserAddr uint32 = 0x0801_0000
)

// ValidFlashRange reports whether [addr, addr+length) lies entirely inside
// the device flash. This is a client-side sanity check only; the bootloader
// performs its own authoritative validation.
func ValidFlashRange(addr, length uint32) bool {
	if addr < FlashSectorAddresses[0] || addr > FlashEnd {
		return false
	}
	end := uint64(addr) + uint64(length)
	return end <= uint64(FlashEnd)+1
}
