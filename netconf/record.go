package netconf

import (
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/AirborneEngineering/blethrs/protocol"
)

// RecordSize is the fixed on-the-wire size of a configuration record.
const RecordSize = 24

// crcOffset is where the CRC field starts; the CRC covers everything
// before it.
const crcOffset = 20

// Record is a device network identity, flashed at a well-known address
// (conventionally protocol.DefaultConfigAddr).
type Record struct {
	// MAC is the device hardware address
	MAC [6]byte

	// IP is the device IPv4 address
	IP [4]byte

	// Gateway is the IPv4 default gateway
	Gateway [4]byte

	// Prefix is the subnet prefix length
	Prefix uint8
}

// ParseRecordFields builds a Record from the string forms accepted on the
// command line: a MAC as colon-separated hex octets, IPv4 dotted decimals
// for address and gateway, and a prefix length that must fit in one byte.
// All validation happens here, before any network I/O.
func ParseRecordFields(mac, ip, gw string, prefix int) (*Record, error) {
	r := &Record{}

	octets := strings.Split(mac, ":")
	if len(octets) != 6 {
		return nil, &EncodeError{Field: "mac", Value: mac,
			Reason: "want 6 colon-separated hex octets"}
	}
	for i, o := range octets {
		v, err := strconv.ParseUint(o, 16, 8)
		if err != nil {
			return nil, &EncodeError{Field: "mac", Value: mac,
				Reason: fmt.Sprintf("octet %d is not a hex byte", i)}
		}
		r.MAC[i] = byte(v)
	}

	addr := net.ParseIP(ip)
	if addr == nil || addr.To4() == nil {
		return nil, &EncodeError{Field: "ip", Value: ip,
			Reason: "not a dotted-decimal IPv4 address"}
	}
	copy(r.IP[:], addr.To4())

	gwAddr := net.ParseIP(gw)
	if gwAddr == nil || gwAddr.To4() == nil {
		return nil, &EncodeError{Field: "gateway", Value: gw,
			Reason: "not a dotted-decimal IPv4 address"}
	}
	copy(r.Gateway[:], gwAddr.To4())

	if prefix < 0 || prefix > 255 {
		return nil, &EncodeError{Field: "prefix", Value: strconv.Itoa(prefix),
			Reason: "must fit in one byte"}
	}
	r.Prefix = uint8(prefix)

	return r, nil
}

// Encode packs the record into its fixed 24-byte flash layout:
//
//	[MAGIC(4, LE)][MAC(6)][IP(4)][GW(4)][PREFIX(1)][PAD(1)][CRC32(4, LE)]
//
// The CRC is always recomputed here, never caller-supplied. It is the
// CRC-32/MPEG-2 of the first 20 bytes with each aligned u32 word byte-swapped
// to big-endian first, matching the device's word-wise hardware CRC unit.
// The swap must be reproduced exactly for the device to accept the record.
func (r *Record) Encode() []byte {
	b := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(b[0:4], protocol.ConfigMagic)
	copy(b[4:10], r.MAC[:])
	copy(b[10:14], r.IP[:])
	copy(b[14:18], r.Gateway[:])
	b[18] = r.Prefix
	b[19] = 0
	binary.LittleEndian.PutUint32(b[crcOffset:], crc(b[:crcOffset]))
	return b
}

// DecodeRecord unpacks a 24-byte flash record, validating the magic, the
// pad byte and the stored CRC.
func DecodeRecord(b []byte) (*Record, error) {
	if len(b) != RecordSize {
		return nil, fmt.Errorf("config record must be %d bytes, got %d", RecordSize, len(b))
	}
	if magic := binary.LittleEndian.Uint32(b[0:4]); magic != protocol.ConfigMagic {
		return nil, fmt.Errorf("bad config magic: got 0x%08X, want 0x%08X",
			magic, protocol.ConfigMagic)
	}
	if b[19] != 0 {
		return nil, fmt.Errorf("bad config padding byte: got 0x%02X, want 0x00", b[19])
	}
	stored := binary.LittleEndian.Uint32(b[crcOffset:])
	if computed := crc(b[:crcOffset]); stored != computed {
		return nil, fmt.Errorf("config CRC mismatch: stored 0x%08X, computed 0x%08X",
			stored, computed)
	}

	r := &Record{}
	copy(r.MAC[:], b[4:10])
	copy(r.IP[:], b[10:14])
	copy(r.Gateway[:], b[14:18])
	r.Prefix = b[18]
	return r, nil
}

// crc computes the record checksum: each 4-byte word is byte-swapped before
// feeding the CRC, since the device checksums the record as u32 words.
func crc(b []byte) uint32 {
	swapped := make([]byte, len(b))
	for i := 0; i+4 <= len(b); i += 4 {
		swapped[i] = b[i+3]
		swapped[i+1] = b[i+2]
		swapped[i+2] = b[i+1]
		swapped[i+3] = b[i]
	}
	return protocol.CRC32MPEG2(swapped)
}

func (r *Record) String() string {
	return fmt.Sprintf("mac=%02X:%02X:%02X:%02X:%02X:%02X ip=%d.%d.%d.%d/%d gateway=%d.%d.%d.%d",
		r.MAC[0], r.MAC[1], r.MAC[2], r.MAC[3], r.MAC[4], r.MAC[5],
		r.IP[0], r.IP[1], r.IP[2], r.IP[3], r.Prefix,
		r.Gateway[0], r.Gateway[1], r.Gateway[2], r.Gateway[3])
}
