package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles lifecycle transitions that move
// inventory as a side effect: shipping consumes the reserved stock, and the
// transition into Backorder releases it. All other transitions only touch
// the order row. Every variant runs under the order row lock.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command. Illegal transitions surface
// as conflicts from the order aggregate naming both statuses.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	now := time.Now().UTC()

	switch cmd.Target() {
	case order.Picked:
		err = aggregate.MarkPicked(now)
	case order.Packing:
		err = aggregate.StartPacking(*cmd.PackerID())
	case order.Packed:
		err = aggregate.MarkPacked(now)
	case order.Shipped:
		if err = aggregate.Ship(now); err != nil {
			return err
		}
		err = consumeReservations(ctx, uow.InventoryRepository(), aggregate)
	case order.Backorder:
		if err = aggregate.MarkBackorder(); err != nil {
			return err
		}
		err = releaseReservations(ctx, uow.InventoryRepository(), aggregate)
	}
	if err != nil {
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

// consumeReservations removes the shipped units from stock. The on-hand and
// reserved counters drop together; the ledger records the movement per line.
func consumeReservations(ctx context.Context, inventoryRepo ports.InventoryRepository, aggregate *order.Order) error {
	now := time.Now().UTC()

	for _, item := range aggregate.Items() {
		unit, err := inventoryRepo.GetForUpdate(ctx, item.SKU(), item.BinLocation())
		if err != nil {
			return err
		}

		if err = unit.Consume(item.Quantity()); err != nil {
			return err
		}

		if err = inventoryRepo.Update(ctx, unit); err != nil {
			return err
		}

		entry, err := inventory.NewLedgerEntry(
			kernel.NewUUID(), item.SKU(), item.BinLocation(),
			-item.Quantity(), inventory.ReasonConsumed, aggregate.ID(), now,
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
