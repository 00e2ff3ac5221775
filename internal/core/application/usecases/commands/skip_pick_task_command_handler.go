package commands

import (
	"context"
	"time"
)

// SkipPickTaskCommandHandler handles the business logic for skipping a pick
// task. Skipping only touches the task row; any picking progress already
// mirrored to the order item stays until the skip is reverted.
type SkipPickTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewSkipPickTaskCommandHandler creates a handler for skipping pick tasks.
func NewSkipPickTaskCommandHandler(uowFactory TaskUoWFactory) SkipPickTaskCommandHandler {
	return SkipPickTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the skip command under the task row lock.
func (h *SkipPickTaskCommandHandler) Handle(ctx context.Context, cmd SkipPickTaskCommand) error {
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

	if err = task.Skip(cmd.Reason(), time.Now().UTC()); err != nil {
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
