package commands

import (
	"context"
	"time"
)

// CompletePickTaskCommandHandler handles the business logic for completing
// a pick task. The task and its parent order item change together: the task
// becomes Completed at full quantity and the item is marked fully picked.
//
// Locks are taken order first, then task, matching the claim handler, so
// concurrent task operations on one order cannot deadlock. The task is read
// once without a lock to learn its order, then re-read under the lock
// before any check runs.
type CompletePickTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewCompletePickTaskCommandHandler creates a handler for task completion.
func NewCompletePickTaskCommandHandler(uowFactory TaskUoWFactory) CompletePickTaskCommandHandler {
	return CompletePickTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command.
func (h *CompletePickTaskCommandHandler) Handle(ctx context.Context, cmd CompletePickTaskCommand) error {
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

	if err = task.Complete(time.Now().UTC()); err != nil {
		return err
	}

	item, err := aggregate.ItemByID(task.OrderItemID())
	if err != nil {
		return err
	}
	if err = item.SetPickedQuantity(item.Quantity()); err != nil {
		return err
	}

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
