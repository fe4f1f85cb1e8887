package protocol

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInfoCmd(t *testing.T) {
	frame := BuildInfoCmd()
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, frame)
}

func TestBuildBootCmd(t *testing.T) {
	frame := BuildBootCmd()
	assert.Equal(t, []byte{0x04, 0x00, 0x00, 0x00}, frame)
}

func TestBuildBootRequest(t *testing.T) {
	// Reserved reboot-to-bootloader code 28, little-endian.
	frame := BuildBootRequest()
	assert.Equal(t, []byte{0x1C, 0x00, 0x00, 0x00}, frame)
}

func TestBuildReadCmd(t *testing.T) {
	tests := []struct {
		name    string
		addr    uint32
		length  uint32
		wantErr string
	}{
		{name: "word aligned", addr: 0x08010000, length: 512},
		{name: "maximum length", addr: 0x08010000, length: MaxResponseSize - StatusLen},
		{name: "unaligned length", addr: 0x08010000, length: 7, wantErr: "multiple of 4"},
		{name: "over response ceiling", addr: 0x08010000, length: MaxResponseSize, wantErr: "response ceiling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildReadCmd(tt.addr, tt.length)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, frame, 12)
			assert.Equal(t, CmdRead, binary.LittleEndian.Uint32(frame[0:4]))
			assert.Equal(t, tt.addr, binary.LittleEndian.Uint32(frame[4:8]))
			assert.Equal(t, tt.length, binary.LittleEndian.Uint32(frame[8:12]))
		})
	}
}

func TestBuildEraseCmd(t *testing.T) {
	frame, err := BuildEraseCmd(0x0800C000, 24)
	require.NoError(t, err)
	require.Len(t, frame, 12)
	assert.Equal(t, CmdErase, binary.LittleEndian.Uint32(frame[0:4]))
	assert.Equal(t, uint32(0x0800C000), binary.LittleEndian.Uint32(frame[4:8]))
	assert.Equal(t, uint32(24), binary.LittleEndian.Uint32(frame[8:12]))

	_, err = BuildEraseCmd(0x0800C000, 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple of 4")
}

func TestBuildWriteCmd(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04}
	frame, err := BuildWriteCmd(0x08010000, data)
	require.NoError(t, err)
	require.Len(t, frame, 12+len(data))
	assert.Equal(t, CmdWrite, binary.LittleEndian.Uint32(frame[0:4]))
	assert.Equal(t, uint32(0x08010000), binary.LittleEndian.Uint32(frame[4:8]))

	// The declared length always equals the actual payload length.
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(frame[8:12]))
	assert.Equal(t, data, frame[12:])
}

func TestBuildWriteCmdRejectsBadData(t *testing.T) {
	_, err := BuildWriteCmd(0x08010000, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	_, err = BuildWriteCmd(0x08010000, []byte{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple of 4")
}

func TestValidFlashRange(t *testing.T) {
	tests := []struct {
		name   string
		addr   uint32
		length uint32
		want   bool
	}{
		{name: "user firmware sector", addr: DefaultUserAddr, length: 0x1000, want: true},
		{name: "config sector", addr: DefaultConfigAddr, length: 24, want: true},
		{name: "whole flash", addr: FlashSectorAddresses[0], length: FlashEnd - FlashSectorAddresses[0] + 1, want: true},
		{name: "below flash", addr: 0x0700_0000, length: 4, want: false},
		{name: "past flash end", addr: FlashEnd - 3, length: 8, want: false},
		{name: "after flash", addr: 0x0900_0000, length: 4, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidFlashRange(tt.addr, tt.length))
		})
	}
}
