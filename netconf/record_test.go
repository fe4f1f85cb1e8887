package netconf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AirborneEngineering/blethrs/protocol"
)

func TestParseRecordFields(t *testing.T) {
	rec, err := ParseRecordFields("02:00:00:00:00:01", "192.168.1.50", "192.168.1.1", 24)
	require.NoError(t, err)

	assert.Equal(t, [6]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}, rec.MAC)
	assert.Equal(t, [4]byte{192, 168, 1, 50}, rec.IP)
	assert.Equal(t, [4]byte{192, 168, 1, 1}, rec.Gateway)
	assert.Equal(t, uint8(24), rec.Prefix)
}

func TestParseRecordFieldsRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		mac    string
		ip     string
		gw     string
		prefix int
		field  string
	}{
		{name: "five mac octets", mac: "02:00:00:00:01", ip: "10.0.0.2", gw: "10.0.0.1", prefix: 24, field: "mac"},
		{name: "non-hex mac octet", mac: "02:00:zz:00:00:01", ip: "10.0.0.2", gw: "10.0.0.1", prefix: 24, field: "mac"},
		{name: "mac octet too wide", mac: "02:00:100:00:00:01", ip: "10.0.0.2", gw: "10.0.0.1", prefix: 24, field: "mac"},
		{name: "bad ip", mac: "02:00:00:00:00:01", ip: "10.0.0.256", gw: "10.0.0.1", prefix: 24, field: "ip"},
		{name: "ipv6 address", mac: "02:00:00:00:00:01", ip: "::1", gw: "10.0.0.1", prefix: 24, field: "ip"},
		{name: "bad gateway", mac: "02:00:00:00:00:01", ip: "10.0.0.2", gw: "not-an-ip", prefix: 24, field: "gateway"},
		{name: "negative prefix", mac: "02:00:00:00:00:01", ip: "10.0.0.2", gw: "10.0.0.1", prefix: -1, field: "prefix"},
		{name: "prefix too wide", mac: "02:00:00:00:00:01", ip: "10.0.0.2", gw: "10.0.0.1", prefix: 256, field: "prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecordFields(tt.mac, tt.ip, tt.gw, tt.prefix)
			require.Error(t, err)

			var ee *EncodeError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.field, ee.Field)
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	rec, err := ParseRecordFields("02:00:00:00:00:01", "192.168.1.50", "192.168.1.1", 24)
	require.NoError(t, err)

	b := rec.Encode()
	require.Len(t, b, RecordSize)

	// Fixed layout per the flash record format.
	assert.Equal(t, []byte{0x70, 0x78, 0x79, 0x67}, b[0:4], "magic, little-endian")
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}, b[4:10], "mac")
	assert.Equal(t, []byte{0xC0, 0xA8, 0x01, 0x32}, b[10:14], "ip")
	assert.Equal(t, []byte{0xC0, 0xA8, 0x01, 0x01}, b[14:18], "gateway")
	assert.Equal(t, byte(24), b[18], "prefix")
	assert.Equal(t, byte(0), b[19], "padding")
}

func TestEncodeCRC(t *testing.T) {
	rec, err := ParseRecordFields("02:00:00:00:00:01", "192.168.1.50", "192.168.1.1", 24)
	require.NoError(t, err)
	b := rec.Encode()

	// The stored CRC is the CRC-32/MPEG-2 of the first 20 bytes with each
	// u32 word byte-swapped to big-endian, matching the device's word-wise
	// checksum routine.
	swapped := make([]byte, crcOffset)
	for i := 0; i < crcOffset; i += 4 {
		swapped[i] = b[i+3]
		swapped[i+1] = b[i+2]
		swapped[i+2] = b[i+1]
		swapped[i+3] = b[i]
	}
	want := protocol.CRC32MPEG2(swapped)
	assert.Equal(t, want, binary.LittleEndian.Uint32(b[crcOffset:]))
}

func TestRecordRoundTrip(t *testing.T) {
	tests := []struct {
		mac    string
		ip     string
		gw     string
		prefix int
	}{
		{"02:00:00:00:00:01", "192.168.1.50", "192.168.1.1", 24},
		{"DE:AD:BE:EF:00:42", "10.1.1.10", "10.1.1.1", 16},
		{"00:00:00:00:00:00", "0.0.0.0", "0.0.0.0", 0},
		{"FF:FF:FF:FF:FF:FF", "255.255.255.255", "255.255.255.255", 32},
	}

	for _, tt := range tests {
		rec, err := ParseRecordFields(tt.mac, tt.ip, tt.gw, tt.prefix)
		require.NoError(t, err)

		decoded, err := DecodeRecord(rec.Encode())
		require.NoError(t, err)
		assert.Equal(t, rec, decoded)
	}
}

func TestDecodeRecordRejectsCorruption(t *testing.T) {
	rec, err := ParseRecordFields("02:00:00:00:00:01", "192.168.1.50", "192.168.1.1", 24)
	require.NoError(t, err)
	good := rec.Encode()

	t.Run("wrong length", func(t *testing.T) {
		_, err := DecodeRecord(good[:20])
		assert.ErrorContains(t, err, "24 bytes")
	})

	t.Run("bad magic", func(t *testing.T) {
		b := append([]byte(nil), good...)
		b[0] ^= 0xFF
		_, err := DecodeRecord(b)
		assert.ErrorContains(t, err, "magic")
	})

	t.Run("bad padding", func(t *testing.T) {
		b := append([]byte(nil), good...)
		b[19] = 0x55
		_, err := DecodeRecord(b)
		assert.ErrorContains(t, err, "padding")
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		b := append([]byte(nil), good...)
		b[12] ^= 0x01
		_, err := DecodeRecord(b)
		assert.ErrorContains(t, err, "CRC mismatch")
	})

	t.Run("flipped crc byte", func(t *testing.T) {
		b := append([]byte(nil), good...)
		b[23] ^= 0x01
		_, err := DecodeRecord(b)
		assert.ErrorContains(t, err, "CRC mismatch")
	})
}

func TestRecordString(t *testing.T) {
	rec, err := ParseRecordFields("02:00:00:00:00:01", "192.168.1.50", "192.168.1.1", 24)
	require.NoError(t, err)
	assert.Equal(t, "mac=02:00:00:00:00:01 ip=192.168.1.50/24 gateway=192.168.1.1", rec.String())
}
