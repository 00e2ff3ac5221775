package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRevertSkipPickTaskCommandIsNotConstructed = errors.New(
		"RevertSkipPickTaskCommand must be created via NewRevertSkipPickTaskCommand constructor",
	)
)

// RevertSkipPickTaskCommand represents a request to put a skipped pick task
// back into the queue. The task returns to Pending with zeroed progress and
// the parent order item's picked quantity is reset with it.
type RevertSkipPickTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRevertSkipPickTaskCommand creates a command to revert a skip.
func NewRevertSkipPickTaskCommand(taskID kernel.UUID) (RevertSkipPickTaskCommand, error) {
	command := RevertSkipPickTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTaskID(taskID); err != nil {
		return RevertSkipPickTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRevertSkipPickTaskCommandIsNotConstructed if validation fails.
func (c RevertSkipPickTaskCommand) Validate() error {
	return c.guard.Validate(ErrRevertSkipPickTaskCommandIsNotConstructed)
}

// TaskID returns the task whose skip is being reverted.
func (c RevertSkipPickTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *RevertSkipPickTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}
