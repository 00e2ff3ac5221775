package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the fulfillment workflow.
//
// State transitions:
//
//	Pending ──┬──> Picking ──> Picked ──> Packing ──> Packed ──> Shipped
//	          │       │           │
//	          │       └───────────┴──────> Cancelled
//	          ├──> Cancelled
//	          └──> Backorder ──> Pending
//
// Shipped and Cancelled are terminal. Picking may also return to Pending
// through an explicit unclaim, which is modelled as a separate operation
// rather than a forward transition.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status are waiting to be claimed by a picker.
	Pending

	// Picking indicates the order has been claimed by a picker
	// and its pick tasks are being worked.
	Picking

	// Picked indicates all required picking work is done.
	Picked

	// Packing indicates a packer has taken the order.
	Packing

	// Packed indicates the order is packed and ready to ship.
	Packed

	// Shipped indicates the order has left the warehouse.
	// This is a final state with no further transitions allowed.
	Shipped

	// Cancelled indicates the order was cancelled before shipment.
	// This is a final state with no further transitions allowed.
	Cancelled

	// Backorder indicates the order is parked until inventory is available.
	Backorder
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Picking:   "Picking",
		Picked:    "Picked",
		Packing:   "Packing",
		Packed:    "Packed",
		Shipped:   "Shipped",
		Cancelled: "Cancelled",
		Backorder: "Backorder",
	}
}

// legalTransitions defines the order state machine. A missing entry means the
// status is terminal. Cancellation and unclaim are modelled as dedicated
// aggregate operations, so Cancelled targets and the Picking->Pending edge do
// not appear here.
func legalTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Picking, Backorder},
		Picking:   {Picked},
		Picked:    {Packing},
		Packing:   {Packed},
		Packed:    {Shipped},
		Backorder: {Pending},
	}
}

// StatusFromString parses the human-readable name of a status.
// Unknown is not accepted.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s < Pending || s > Backorder {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Shipped || s == Cancelled
}

// CanTransitionTo reports whether the state machine permits moving from the
// current status to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range legalTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the status to the target status if the state machine
// allows it.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (0, *errs.ConflictError) naming the attempted and current status otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewConflictError(
			fmt.Sprintf("cannot transition from %s to %s", s, target),
		)
	}
	return target, nil
}

// ValidateCanHavePicker validates the consistency between order status and
// picker assignment.
//
// Business rules:
//   - Pending and Backorder orders must not have a picker assigned
//   - Picking through Shipped orders must have a picker assigned
//   - Cancelled orders may have either (cancellation keeps the claim history)
func (s Status) ValidateCanHavePicker(picker bool) error {
	switch s {
	case Pending, Backorder:
		if picker {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have a picker", s),
			)
		}
	case Picking, Picked, Packing, Packed, Shipped:
		if !picker {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have no picker", s),
			)
		}
	}

	return nil
}
