package bootloader

import "time"

// Progress phases reported during a chunked transfer.
const (
	// PhaseHandshake is waiting for the bootloader to come up
	PhaseHandshake = "handshake"

	// PhaseErasing is erasing the target flash range
	PhaseErasing = "erasing"

	// PhaseWriting is writing segments
	PhaseWriting = "writing"

	// PhaseReading is reading segments back for verification
	PhaseReading = "reading"

	// PhaseComplete means the operation finished successfully
	PhaseComplete = "complete"
)

// Progress describes the state of a chunked transfer. Passed to
// ProgressCallback as each segment completes.
type Progress struct {
	// Phase is one of the Phase* constants
	Phase string

	// CurrentSegment counts completed segments in the current phase
	CurrentSegment int

	// TotalSegments is the segment count for the whole transfer
	TotalSegments int

	// Percentage is the completion of the current phase (0.0 to 100.0)
	Percentage float64

	// BytesDone is the number of payload bytes handled in the current phase
	BytesDone int

	// ElapsedTime is the time since the transfer started
	ElapsedTime time.Duration
}

// ProgressCallback observes transfer progress. It may be nil, in which case
// nothing is reported; implementations must return quickly and must not
// affect the transfer's correctness.
type ProgressCallback func(Progress)
