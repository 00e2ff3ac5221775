package commands

import (
	"context"
)

// RevertSkipPickTaskCommandHandler handles the business logic for putting a
// skipped pick task back into the queue. Task and parent order item reset
// in one transaction; locks are taken order first, then task.
type RevertSkipPickTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewRevertSkipPickTaskCommandHandler creates a handler for skip reversal.
func NewRevertSkipPickTaskCommandHandler(uowFactory TaskUoWFactory) RevertSkipPickTaskCommandHandler {
	return RevertSkipPickTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the revert command.
func (h *RevertSkipPickTaskCommandHandler) Handle(ctx context.Context, cmd RevertSkipPickTaskCommand) error {
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

	if err = task.RevertSkip(); err != nil {
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
