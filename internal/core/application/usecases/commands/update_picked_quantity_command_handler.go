package commands

import (
	"context"
)

// UpdatePickedQuantityCommandHandler handles partial picking progress
// reports. Only the task row changes here; the order item is synced when
// the task completes or is undone.
type UpdatePickedQuantityCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewUpdatePickedQuantityCommandHandler creates a handler for progress updates.
func NewUpdatePickedQuantityCommandHandler(uowFactory TaskUoWFactory) UpdatePickedQuantityCommandHandler {
	return UpdatePickedQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the progress update under the task row lock.
func (h *UpdatePickedQuantityCommandHandler) Handle(ctx context.Context, cmd UpdatePickedQuantityCommand) error {
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

	if err = task.SetPickedQuantity(cmd.Quantity()); err != nil {
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
