package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUndoPickCommandIsNotConstructed = errors.New(
		"UndoPickCommand must be created via NewUndoPickCommand constructor",
	)
)

// UndoPickCommand represents a request to wind back picking on a task, e.g.
// after the wrong item was scanned. The task returns to Pending and the
// parent order item's picked quantity is reset with it, so a completed pick
// can be corrected before the order moves on.
type UndoPickCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUndoPickCommand creates a command to undo picking on a task.
func NewUndoPickCommand(taskID kernel.UUID) (UndoPickCommand, error) {
	command := UndoPickCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTaskID(taskID); err != nil {
		return UndoPickCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUndoPickCommandIsNotConstructed if validation fails.
func (c UndoPickCommand) Validate() error {
	return c.guard.Validate(ErrUndoPickCommandIsNotConstructed)
}

// TaskID returns the task being undone.
func (c UndoPickCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *UndoPickCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}
