package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// UnclaimOrderCommandHandler handles the business logic for releasing a
// claimed order back to the queue. The reverse of claiming: runs under the
// same order row lock, drops the generated pick tasks, and clears the claim
// so another picker can take the order.
type UnclaimOrderCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewUnclaimOrderCommandHandler creates a handler for order unclaiming.
func NewUnclaimOrderCommandHandler(uowFactory TaskUoWFactory) UnclaimOrderCommandHandler {
	return UnclaimOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the unclaim command. Only the claim holder can release
// the order; anyone else gets a conflict.
func (h *UnclaimOrderCommandHandler) Handle(ctx context.Context, cmd UnclaimOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Picker() == nil || !aggregate.Picker().IsEqual(cmd.PickerID()) {
		return errs.NewConflictError(
			fmt.Sprintf("order %s is not claimed by picker %s", aggregate.Number(), cmd.PickerID()),
		)
	}

	if err = aggregate.Unclaim(); err != nil {
		return err
	}

	if err = uow.PickTaskRepository().DeleteAllByOrder(ctx, aggregate.ID()); err != nil {
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
