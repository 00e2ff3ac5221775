package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCompletePickTaskCommandIsNotConstructed = errors.New(
		"CompletePickTaskCommand must be created via NewCompletePickTaskCommand constructor",
	)
)

// CompletePickTaskCommand represents a request to finish a pick task.
// Completion marks the parent order item fully picked in the same
// transaction. Completing twice is a conflict, not a no-op.
type CompletePickTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePickTaskCommand creates a command to complete a pick task.
func NewCompletePickTaskCommand(taskID kernel.UUID) (CompletePickTaskCommand, error) {
	command := CompletePickTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTaskID(taskID); err != nil {
		return CompletePickTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompletePickTaskCommandIsNotConstructed if validation fails.
func (c CompletePickTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickTaskCommandIsNotConstructed)
}

// TaskID returns the task being completed.
func (c CompletePickTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *CompletePickTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}
