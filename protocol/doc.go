// Package protocol implements the blethrs Ethernet bootloader wire protocol.
//
// This package provides functions to build command frames and parse response
// frames for the bootloader's TCP command port, plus the UDP boot-request
// datagram and the CRC-32/MPEG-2 checksum shared with the device.
//
// # Protocol Overview
//
// All integers are little-endian. Requests and responses are exchanged one
// pair per TCP connection:
//
//	Request:  [CMD(4)][ARGS...]
//	Response: [STATUS(4)][PAYLOAD...]
//
// Commands:
//
//	Info  (0)  no arguments          -> UTF-8 build description
//	Read  (1)  [ADDR(4)][LENGTH(4)]  -> LENGTH raw bytes
//	Erase (2)  [ADDR(4)][LENGTH(4)]  -> empty
//	Write (3)  [ADDR(4)][LENGTH(4)][DATA...] -> empty
//	Boot  (4)  no arguments          -> empty
//
// # Command Builders
//
// Use the Build* functions to create request frames:
//
//	frame := protocol.BuildInfoCmd()
//	frame, err := protocol.BuildWriteCmd(addr, data)
//	// ... etc
//
// # Response Parsing
//
// Use CheckResponse to validate a response and extract its payload:
//
//	payload, err := protocol.CheckResponse("write", response)
//
// A non-success status surfaces as a *ProtocolError whose Status maps to the
// fixed error table; the exact code assignment must match the target
// bootloader build.
package protocol
