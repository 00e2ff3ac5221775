package picktask

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a pick task.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	   │  ▲          │
//	   │  └──────────┤ (undo pick)
//	   ▼             ▼
//	Skipped ──> Pending (revert skip)
//
// Completed tasks can be reset through undo, Skipped tasks through revert;
// both return the task to Pending with zeroed progress.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a freshly generated task.
	Pending

	// InProgress indicates a picker has started the task.
	InProgress

	// Completed indicates the full required quantity has been picked.
	Completed

	// Skipped indicates the task was set aside with a reason. Skipped tasks
	// are excluded from the set required to finish the order but still count
	// in progress denominators.
	Skipped
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		InProgress: "InProgress",
		Completed:  "Completed",
		Skipped:    "Skipped",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s < Pending || s > Skipped {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid task status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
