package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler handles the business logic for order
// cancellation. Cancellation and reservation release commit together:
// either the order is cancelled and every held unit is back in the
// available pool, or nothing changed.
//
// Repeating the command against a cancelled order succeeds without touching
// inventory again, so a retried cancellation can never release stock twice.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command under the order row lock.
// Backorder orders hold no reservations (they were released on the way into
// Backorder), so only the status changes for them.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	holdsReservations := aggregate.Status() != order.Backorder

	alreadyCancelled, err := aggregate.Cancel(time.Now().UTC())
	if err != nil {
		return err
	}
	if alreadyCancelled {
		return nil
	}

	if holdsReservations {
		if err = releaseReservations(ctx, uow.InventoryRepository(), aggregate); err != nil {
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

// releaseReservations returns every item's held stock to the available pool
// and records the movement in the ledger. Shared by cancellation and the
// transition into Backorder.
func releaseReservations(ctx context.Context, inventoryRepo ports.InventoryRepository, aggregate *order.Order) error {
	now := time.Now().UTC()

	for _, item := range aggregate.Items() {
		unit, err := inventoryRepo.GetForUpdate(ctx, item.SKU(), item.BinLocation())
		if err != nil {
			return err
		}

		if err = unit.Release(item.Quantity()); err != nil {
			return err
		}

		if err = inventoryRepo.Update(ctx, unit); err != nil {
			return err
		}

		entry, err := inventory.NewLedgerEntry(
			kernel.NewUUID(), item.SKU(), item.BinLocation(),
			-item.Quantity(), inventory.ReasonReleased, aggregate.ID(), now,
		)
		if err != nil {
			return err
		}

		if err = inventoryRepo.AddLedgerEntry(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}
