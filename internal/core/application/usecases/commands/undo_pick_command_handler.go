package commands

import (
	"context"
)

// UndoPickCommandHandler handles the business logic for winding back
// picking on a task. Works from InProgress or Completed; the task and its
// parent order item reset together in one transaction, locks taken order
// first, then task.
type UndoPickCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewUndoPickCommandHandler creates a handler for pick undo.
func NewUndoPickCommandHandler(uowFactory TaskUoWFactory) UndoPickCommandHandler {
	return UndoPickCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the undo command.
func (h *UndoPickCommandHandler) Handle(ctx context.Context, cmd UndoPickCommand) error {
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
	orderRepo := uow.OrderRepository()

	task, err := taskRepo.Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	aggregate, err := orderRepo.GetForUpdate(ctx, task.OrderID())
	if err != nil {
		return err
	}

	task, err = taskRepo.GetForUpdate(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = task.ResetProgress(); err != nil {
		return err
	}

	item, err := aggregate.ItemByID(task.OrderItemID())
	if err != nil {
		return err
	}
	item.ResetPickedQuantity()

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
