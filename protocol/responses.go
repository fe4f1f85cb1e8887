package protocol

import (
	"encoding/binary"
	"fmt"
)

// ParseResponse extracts the status code and payload from a response.
//
// Response structure:
//
//	[STATUS(4)][PAYLOAD...]
//
// A response shorter than the status word is a framing error (returned as a
// plain error, not a ProtocolError), since it means the link delivered a
// truncated response rather than the bootloader reporting a failure. On a
// non-success status the remaining bytes are not interpreted and nil is
// returned for the payload.
func ParseResponse(frame []byte) (Status, []byte, error) {
	if len(frame) < StatusLen {
		return 0, nil, fmt.Errorf("response too short: got %d bytes, need at least %d",
			len(frame), StatusLen)
	}

	status := Status(binary.LittleEndian.Uint32(frame[:StatusLen]))
	if status != StatusSuccess {
		return status, nil, nil
	}

	return status, frame[StatusLen:], nil
}

// CheckResponse parses a response and converts a non-success status into a
// *ProtocolError carrying the given operation name. On success it returns
// the payload bytes verbatim; callers interpret them according to the
// command issued (text for Info, raw bytes for Read, empty otherwise).
func CheckResponse(op string, frame []byte) ([]byte, error) {
	status, payload, err := ParseResponse(frame)
	if err != nil {
		return nil, err
	}
	if status != StatusSuccess {
		return nil, &ProtocolError{Operation: op, Status: status}
	}
	return payload, nil
}
