package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Priority is an ordered ranking of how urgently an order should be
// fulfilled. Higher values sort earlier in the picking queue.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "Unknown",
		PriorityLow:     "Low",
		PriorityNormal:  "Normal",
		PriorityHigh:    "High",
		PriorityUrgent:  "Urgent",
	}
}

// PriorityFromString parses a priority from its case-sensitive name.
// Used when binding HTTP requests.
func PriorityFromString(s string) (Priority, error) {
	for p, str := range getPriorityStrings() {
		if p != PriorityUnknown && str == s {
			return p, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"priority is invalid",
		fmt.Errorf("%q is not a valid priority", s),
	)
}

// Validate checks if the Priority value is valid.
func (p Priority) Validate() error {
	if p < PriorityLow || p > PriorityUrgent {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority is invalid",
			fmt.Errorf("%d is not a valid priority", p),
		)
	}
	return nil
}

// String returns the human-readable name of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
