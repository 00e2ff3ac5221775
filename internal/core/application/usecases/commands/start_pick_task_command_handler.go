package commands

import (
	"context"
	"time"
)

// StartPickTaskCommandHandler handles the business logic for starting a
// pick task. The task row lock decides races: the first starter transitions
// the task, the second re-reads InProgress after the lock clears and fails
// with a conflict.
type StartPickTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewStartPickTaskCommandHandler creates a handler for starting pick tasks.
func NewStartPickTaskCommandHandler(uowFactory TaskUoWFactory) StartPickTaskCommandHandler {
	return StartPickTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command under the task row lock.
func (h *StartPickTaskCommandHandler) Handle(ctx context.Context, cmd StartPickTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.PickTaskRepository()
	task, err := taskRepo.GetForUpdate(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = task.Start(cmd.PickerID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
