package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSkipPickTaskCommandIsNotConstructed = errors.New(
		"SkipPickTaskCommand must be created via NewSkipPickTaskCommand constructor",
	)
)

// SkipPickTaskCommand represents a request to set a pick task aside with a
// reason, e.g. an empty bin or damaged stock.
type SkipPickTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID
	reason string

	guard guard.ConstructorGuard
}

// NewSkipPickTaskCommand creates a command to skip a pick task.
// The reason is mandatory; an unexplained skip is useless to the floor
// supervisor resolving it.
func NewSkipPickTaskCommand(taskID kernel.UUID, reason string) (SkipPickTaskCommand, error) {
	command := SkipPickTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTaskID(taskID),
		command.setReason(reason),
	); err != nil {
		return SkipPickTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSkipPickTaskCommandIsNotConstructed if validation fails.
func (c SkipPickTaskCommand) Validate() error {
	return c.guard.Validate(ErrSkipPickTaskCommandIsNotConstructed)
}

// TaskID returns the task being skipped.
func (c SkipPickTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Reason returns why the task is being skipped.
func (c SkipPickTaskCommand) Reason() string {
	return c.reason
}

func (c *SkipPickTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *SkipPickTaskCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
