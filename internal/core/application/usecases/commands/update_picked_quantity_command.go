package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdatePickedQuantityCommandIsNotConstructed = errors.New(
		"UpdatePickedQuantityCommand must be created via NewUpdatePickedQuantityCommand constructor",
	)
)

// UpdatePickedQuantityCommand represents a partial-progress report on a
// pick task, e.g. from a scanner event. The quantity is absolute, not a
// delta; the task bounds it against its required quantity.
type UpdatePickedQuantityCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewUpdatePickedQuantityCommand creates a command to record picking
// progress. The quantity may not be negative; the upper bound is checked
// against the task itself.
func NewUpdatePickedQuantityCommand(taskID kernel.UUID, quantity int) (UpdatePickedQuantityCommand, error) {
	command := UpdatePickedQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTaskID(taskID),
		command.setQuantity(quantity),
	); err != nil {
		return UpdatePickedQuantityCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdatePickedQuantityCommandIsNotConstructed if validation fails.
func (c UpdatePickedQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePickedQuantityCommandIsNotConstructed)
}

// TaskID returns the task being updated.
func (c UpdatePickedQuantityCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Quantity returns the absolute picked quantity.
func (c UpdatePickedQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdatePickedQuantityCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *UpdatePickedQuantityCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "required quantity")
	}

	c.quantity = quantity
	return nil
}
