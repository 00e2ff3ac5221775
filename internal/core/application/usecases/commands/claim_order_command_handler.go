package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picktask"
	"fulfillment/internal/pkg/errs"
)

// ClaimOrderCommandHandler handles the business logic for claiming an order.
// At most one picker can hold an order, and a picker can hold at most
// activeOrderLimit orders at a time.
//
// Both guarantees rest on the database row lock: the handler loads the order
// with SELECT ... FOR UPDATE, so concurrent claimers serialize and every
// check below runs against committed state. The active-order count is taken
// inside the same lock, which closes the window where two claims by one
// picker could both pass the limit check.
type ClaimOrderCommandHandler struct {
	uowFactory       TaskUoWFactory
	activeOrderLimit int
}

// NewClaimOrderCommandHandler creates a handler for order claiming.
// activeOrderLimit caps how many orders one picker can have in Picking
// status at once.
func NewClaimOrderCommandHandler(uowFactory TaskUoWFactory, activeOrderLimit int) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory:       uowFactory,
		activeOrderLimit: activeOrderLimit,
	}
}

// Handle processes the claim command: lock the order row, re-check
// claimability and the picker's active-order count, transition the order,
// and regenerate the pick task set. Any stale tasks from an earlier claim
// attempt are discarded before regeneration.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	// Claimability comes before the limit: an unclaimable order reports its
	// own conflict even when the picker is maxed out.
	if err = aggregate.EnsureClaimable(); err != nil {
		return err
	}

	count, err := orderRepo.CountByPickerAndStatus(ctx, cmd.PickerID(), order.Picking)
	if err != nil {
		return err
	}
	if count >= int64(h.activeOrderLimit) {
		return errs.NewConflictError(
			fmt.Sprintf("picker %s has reached the maximum of %d active orders",
				cmd.PickerID(), h.activeOrderLimit),
		)
	}

	if err = aggregate.Claim(cmd.PickerID(), time.Now().UTC()); err != nil {
		return err
	}

	taskRepo := uow.PickTaskRepository()
	if err = taskRepo.DeleteAllByOrder(ctx, aggregate.ID()); err != nil {
		return err
	}

	for _, item := range aggregate.Items() {
		task, err := picktask.NewTask(
			kernel.NewUUID(), aggregate.ID(), item.ID(),
			item.SKU(), item.Name(), item.BinLocation(), item.Quantity(),
		)
		if err != nil {
			return err
		}

		if err = taskRepo.Add(ctx, task); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
