package protocol

import "fmt"

// Status is a bootloader response status code.
type Status uint32

// String returns the fixed human-readable name for a status code.
// Unrecognized values render as "unknown error N" rather than failing.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case ErrInvalidAddress:
		return "invalid address"
	case ErrLengthNotMultiple4:
		return "length not multiple of 4"
	case ErrLengthTooLong:
		return "length too long"
	case ErrDataLengthIncorrect:
		return "data length incorrect"
	case ErrEraseError:
		return "erase error"
	case ErrWriteError:
		return "write error"
	case ErrFlashError:
		return "flash error"
	case ErrNetworkError:
		return "network error"
	case ErrInternalError:
		return "internal error"
	default:
		return fmt.Sprintf("unknown error %d", uint32(s))
	}
}

// ProtocolError represents a non-success status returned by the bootloader.
// It is always fatal to the operation that received it and is never retried.
type ProtocolError struct {
	// Operation is the command that failed
	Operation string

	// Status is the error code from the bootloader
	Status Status
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s failed: %s (%d)", e.Operation, e.Status, uint32(e.Status))
}

// IsProtocolError returns true if the error is a ProtocolError.
func IsProtocolError(err error) bool {
	_, ok := err.(*ProtocolError)
	return ok
}
