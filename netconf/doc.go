// Package netconf encodes the bootloader's network configuration record.
//
// The record is a fixed 24-byte block holding the device's MAC address,
// IPv4 address, gateway and subnet prefix length, protected by a
// CRC-32/MPEG-2 checksum and stored at a well-known flash address
// (conventionally 0x0800C000) where the firmware reads it at boot.
//
// # Layout
//
//	[MAGIC(4, LE)][MAC(6)][IP(4)][GW(4)][PREFIX(1)][PAD(1)][CRC32(4, LE)]
//
// # Usage
//
//	rec, err := netconf.ParseRecordFields(
//	    "02:00:00:00:00:01", "192.168.1.50", "192.168.1.1", 24)
//	if err != nil {
//	    // malformed field, nothing was sent anywhere
//	}
//	raw := rec.Encode() // 24 bytes ready to flash
//
// DecodeRecord is the inverse and validates the magic, padding and CRC, so
// a record read back from the device can be checked field-for-field.
package netconf
