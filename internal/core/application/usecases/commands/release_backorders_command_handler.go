package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ReleaseBackordersCommandHandler re-checks stock for orders parked in
// Backorder and returns the ones that can be fully reserved to the Pending
// queue. Each order is processed in its own transaction: one order still
// short on stock rolls back alone and the sweep moves on.
type ReleaseBackordersCommandHandler struct {
	uowFactory UoWFactory
}

// NewReleaseBackordersCommandHandler creates a handler for backorder sweeps.
func NewReleaseBackordersCommandHandler(uowFactory UoWFactory) ReleaseBackordersCommandHandler {
	return ReleaseBackordersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep. Orders whose stock is still short stay in
// Backorder; any other failure aborts the sweep.
func (h *ReleaseBackordersCommandHandler) Handle(ctx context.Context, cmd ReleaseBackordersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	waiting, err := h.waitingOrderIDs(ctx)
	if err != nil {
		return err
	}

	for _, orderID := range waiting {
		if err = h.releaseOne(ctx, orderID); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				continue
			}
			return err
		}
	}

	return nil
}

func (h *ReleaseBackordersCommandHandler) waitingOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregates, err := uow.OrderRepository().GetAllInStatus(ctx, order.Backorder)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(aggregates))
	for _, aggregate := range aggregates {
		ids = append(ids, aggregate.ID())
	}
	return ids, nil
}

// releaseOne re-reserves stock for one backorder under its row lock. The
// status is re-checked after the lock: another worker may have released or
// cancelled the order since the sweep listed it.
func (h *ReleaseBackordersCommandHandler) releaseOne(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}
	if aggregate.Status() != order.Backorder {
		return nil
	}

	inventoryRepo := uow.InventoryRepository()
	now := time.Now().UTC()

	for _, item := range aggregate.Items() {
		unit, err := inventoryRepo.GetForUpdate(ctx, item.SKU(), item.BinLocation())
		if err != nil {
			return err
		}

		if err = unit.Reserve(item.Quantity()); err != nil {
			return err
		}

		if err = inventoryRepo.Update(ctx, unit); err != nil {
			return err
		}

		entry, err := inventory.NewLedgerEntry(
			kernel.NewUUID(), item.SKU(), item.BinLocation(),
			item.Quantity(), inventory.ReasonReserved, aggregate.ID(), now,
		)
		if err != nil {
			return err
		}

		if err = inventoryRepo.AddLedgerEntry(ctx, entry); err != nil {
			return err
		}
	}

	if err = aggregate.ReleaseBackorder(); err != nil {
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
