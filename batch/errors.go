package batch

import (
	"errors"
	"fmt"
)

// Sentinel kinds for batch errors.
var (
	// ErrNotProcessed marks outcomes for records the runner never reached,
	// e.g. because the batch was canceled before submission.
	ErrNotProcessed = errors.New("record not processed")

	// ErrRecordPanicked marks a record whose scoring panicked.
	ErrRecordPanicked = errors.New("scoring panicked")
)

// ScoringError wraps a fault that survived extraction for one record,
// keyed to its position in the input so a batch never silently drops a
// record.
type ScoringError struct {
	Index int
	Err   error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring record %d: %v", e.Index, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }
