package netconf

import "fmt"

// EncodeError indicates a malformed field supplied to the record encoder.
// It is always raised before any network I/O takes place.
type EncodeError struct {
	// Field is the record field that failed validation
	Field string

	// Value is the rejected input
	Value string

	// Reason describes what was expected
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
