package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrStartPickTaskCommandIsNotConstructed = errors.New(
		"StartPickTaskCommand must be created via NewStartPickTaskCommand constructor",
	)
)

// StartPickTaskCommand represents a picker's request to start working a
// pick task. When two pickers race for the same task, exactly one start
// succeeds; the loser gets a conflict.
type StartPickTaskCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	pickerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPickTaskCommand creates a command to start a pick task.
func NewStartPickTaskCommand(taskID kernel.UUID, pickerID kernel.UUID) (StartPickTaskCommand, error) {
	command := StartPickTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTaskID(taskID),
		command.setPickerID(pickerID),
	); err != nil {
		return StartPickTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartPickTaskCommandIsNotConstructed if validation fails.
func (c StartPickTaskCommand) Validate() error {
	return c.guard.Validate(ErrStartPickTaskCommandIsNotConstructed)
}

// TaskID returns the task being started.
func (c StartPickTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// PickerID returns the picker starting the task.
func (c StartPickTaskCommand) PickerID() kernel.UUID {
	return c.pickerID
}

func (c *StartPickTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *StartPickTaskCommand) setPickerID(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("pickerID is invalid", err)
	}

	c.pickerID = pickerID
	return nil
}
