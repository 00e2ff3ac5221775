package picktask

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrTaskIsNotConstructed is returned when a Task instance was not created
	// through the NewTask or RestoreTask factory methods.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask or RestoreTask")
)

// Task is one unit of picking work derived from an order item: pick the
// required quantity of one SKU from one bin. Tasks are generated when an
// order is claimed (one per item) and are owned by that order; claiming
// discards any stale task set from a previous failed claim before
// regenerating, so exactly one active set exists per order.
//
// Invariants:
//   - pickedQuantity is always between 0 and requiredQuantity
//   - Completed implies pickedQuantity == requiredQuantity
//   - Skipped tasks carry a reason and a skip timestamp
type Task struct {
	id               kernel.UUID
	orderID          kernel.UUID
	orderItemID      kernel.UUID
	sku              string
	name             string
	binLocation      string
	requiredQuantity int
	pickedQuantity   int
	status           Status
	pickerID         *kernel.UUID
	startedAt        *time.Time
	completedAt      *time.Time
	skippedAt        *time.Time
	skipReason       *string

	isConstructed bool
}

// NewTask creates a pending pick task for an order item. The SKU, name, and
// target bin are copied from the item so pickers work from a self-contained
// task row.
func NewTask(
	id kernel.UUID,
	orderID kernel.UUID,
	orderItemID kernel.UUID,
	sku string,
	name string,
	binLocation string,
	requiredQuantity int,
) (*Task, error) {
	task := &Task{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		task.setID(id),
		task.setOrderID(orderID),
		task.setOrderItemID(orderItemID),
		task.setSKU(sku),
		task.setName(name),
		task.setBinLocation(binLocation),
		task.setRequiredQuantity(requiredQuantity),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// RestoreTask reconstructs a pick task from persistence, re-checking the
// picked-quantity bound against the stored required quantity.
func RestoreTask(
	id kernel.UUID,
	orderID kernel.UUID,
	orderItemID kernel.UUID,
	sku string,
	name string,
	binLocation string,
	requiredQuantity int,
	pickedQuantity int,
	status Status,
	pickerID *kernel.UUID,
	startedAt, completedAt, skippedAt *time.Time,
	skipReason *string,
) (*Task, error) {
	task, err := NewTask(id, orderID, orderItemID, sku, name, binLocation, requiredQuantity)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if pickedQuantity < 0 || pickedQuantity > requiredQuantity {
		return nil, errs.NewValueIsOutOfRangeError("pickedQuantity", pickedQuantity, 0, requiredQuantity)
	}

	task.pickedQuantity = pickedQuantity
	task.status = status
	task.pickerID = pickerID
	task.startedAt = startedAt
	task.completedAt = completedAt
	task.skippedAt = skippedAt
	task.skipReason = skipReason
	return task, nil
}

// Validate ensures the Task instance was properly constructed.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// ID returns the task's unique identifier.
func (t *Task) ID() kernel.UUID { return t.id }

// OrderID returns the owning order.
func (t *Task) OrderID() kernel.UUID { return t.orderID }

// OrderItemID returns the order line this task was generated from.
func (t *Task) OrderItemID() kernel.UUID { return t.orderItemID }

// SKU returns the stock-keeping unit to pick.
func (t *Task) SKU() string { return t.sku }

// Name returns the display name copied from the order item.
func (t *Task) Name() string { return t.name }

// BinLocation returns the bin to pick from.
func (t *Task) BinLocation() string { return t.binLocation }

// RequiredQuantity returns how many units the task requires.
func (t *Task) RequiredQuantity() int { return t.requiredQuantity }

// PickedQuantity returns how many units have been picked so far.
func (t *Task) PickedQuantity() int { return t.pickedQuantity }

// Status returns the current status of the task.
func (t *Task) Status() Status { return t.status }

// Picker returns the picker working the task, or nil.
func (t *Task) Picker() *kernel.UUID { return t.pickerID }

// StartedAt returns when the task was started, or nil.
func (t *Task) StartedAt() *time.Time { return t.startedAt }

// CompletedAt returns when the task was completed, or nil.
func (t *Task) CompletedAt() *time.Time { return t.completedAt }

// SkippedAt returns when the task was skipped, or nil.
func (t *Task) SkippedAt() *time.Time { return t.skippedAt }

// SkipReason returns why the task was skipped, or nil.
func (t *Task) SkipReason() *string { return t.skipReason }

// Start assigns the task to a picker and transitions it to InProgress.
// Legal only from Pending; a concurrent starter that loses the row lock race
// re-reads a non-Pending status and fails here with a conflict.
func (t *Task) Start(pickerID kernel.UUID, now time.Time) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}
	if t.status != Pending {
		return errs.NewConflictError(
			fmt.Sprintf("task is not available for starting: current status is %s", t.status),
		)
	}

	t.status = InProgress
	t.pickerID = &pickerID
	t.startedAt = &now
	return nil
}

// SetPickedQuantity records partial picking progress, e.g. from scan events.
// Legal only while the task is InProgress; the quantity must stay within
// [0, requiredQuantity]. Reaching the required quantity does not complete the
// task implicitly; completion is an explicit operation.
func (t *Task) SetPickedQuantity(quantity int) error {
	if t.status != InProgress {
		return errs.NewConflictError(
			fmt.Sprintf("task quantity cannot be updated: current status is %s", t.status),
		)
	}
	if quantity < 0 || quantity > t.requiredQuantity {
		return errs.NewValueIsOutOfRangeError("pickedQuantity", quantity, 0, t.requiredQuantity)
	}

	t.pickedQuantity = quantity
	return nil
}

// Complete marks the task done: status Completed, pickedQuantity forced to
// the required quantity, completion timestamp stamped.
//
// Completing an already-Completed task fails with a conflict rather than
// being idempotent; this guards downstream progress aggregates against
// double counting. A Skipped task must be reverted before completion.
func (t *Task) Complete(now time.Time) error {
	switch t.status {
	case Completed:
		return errs.NewConflictError("task is already completed")
	case Skipped:
		return errs.NewConflictError("cannot complete a skipped task: revert the skip first")
	}

	t.status = Completed
	t.pickedQuantity = t.requiredQuantity
	t.completedAt = &now
	return nil
}

// Skip sets the task aside with a reason. Legal from any non-Completed
// state. Skipped tasks do not block the order from progressing but still
// count in progress denominators.
func (t *Task) Skip(reason string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("skipReason")
	}
	if t.status == Completed {
		return errs.NewConflictError("cannot skip a completed task")
	}

	t.status = Skipped
	t.skippedAt = &now
	t.skipReason = &reason
	return nil
}

// RevertSkip returns a Skipped task to Pending with zeroed progress.
// The caller must reset the parent order item's picked quantity in the same
// transaction; Task cannot reach its sibling entity from here.
func (t *Task) RevertSkip() error {
	if t.status != Skipped {
		return errs.NewConflictError(
			fmt.Sprintf("task is not skipped: current status is %s", t.status),
		)
	}

	t.status = Pending
	t.pickedQuantity = 0
	t.pickerID = nil
	t.startedAt = nil
	t.skippedAt = nil
	t.skipReason = nil
	return nil
}

// ResetProgress undoes picking on the task: status back to Pending,
// pickedQuantity zeroed, start/completion state cleared. Used for undo-scan
// workflows. Legal from InProgress or Completed.
func (t *Task) ResetProgress() error {
	if t.status != InProgress && t.status != Completed {
		return errs.NewConflictError(
			fmt.Sprintf("task has no progress to undo: current status is %s", t.status),
		)
	}

	t.status = Pending
	t.pickedQuantity = 0
	t.pickerID = nil
	t.startedAt = nil
	t.completedAt = nil
	return nil
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID is invalid", err)
	}
	t.orderID = orderID
	return nil
}

func (t *Task) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderItemID is invalid", err)
	}
	t.orderItemID = orderItemID
	return nil
}

func (t *Task) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	t.sku = sku
	return nil
}

func (t *Task) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	t.name = name
	return nil
}

func (t *Task) setBinLocation(binLocation string) error {
	if binLocation == "" {
		return errs.NewValueIsRequiredError("binLocation")
	}
	t.binLocation = binLocation
	return nil
}

func (t *Task) setRequiredQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"requiredQuantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	t.requiredQuantity = quantity
	return nil
}
