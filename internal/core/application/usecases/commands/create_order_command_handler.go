package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves each requested SKU against the product catalog, reserves stock
// under row locks, and persists the order with server-computed totals.
//
// The whole operation runs in one transaction: if any line cannot be
// resolved or reserved, every reservation taken so far is rolled back and
// no order is written.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.ProductCatalog
	pricing    services.PricingCalculator
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires a UoWFactory for transactional persistence, the product catalog
// for SKU resolution, and the pricing calculator for tax and shipping.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	catalog ports.ProductCatalog,
	pricing services.PricingCalculator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricing:    pricing,
	}
}

// Handle processes the order creation command.
// Reserves stock line by line, writes a ledger entry per reservation, and
// creates the order in Pending status. Insufficient stock on any line fails
// the whole command with a conflict.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	inventoryRepo := uow.InventoryRepository()
	now := time.Now().UTC()

	items := make([]*order.Item, 0, len(cmd.Lines()))
	currency := ""
	for _, line := range cmd.Lines() {
		product, err := h.catalog.GetBySKU(ctx, line.SKU())
		if err != nil {
			return err
		}
		if !product.Active {
			return errs.NewObjectNotFoundError("sku", line.SKU())
		}

		if currency == "" {
			currency = product.Currency
		} else if currency != product.Currency {
			return errs.NewConflictError(
				fmt.Sprintf("order mixes currencies: %s and %s", currency, product.Currency),
			)
		}

		if err = h.reserveLine(ctx, inventoryRepo, product, line.Quantity(), cmd.OrderID(), now); err != nil {
			return err
		}

		item, err := order.NewItem(
			kernel.NewUUID(), product.SKU, product.Name,
			line.Quantity(), product.BinLocation, product.UnitPrice,
		)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.Priority(), currency, items,
		h.pricing.Tax(subtotal), h.pricing.ShippingFee(subtotal), cmd.Discount(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h *CreateOrderCommandHandler) reserveLine(
	ctx context.Context,
	inventoryRepo ports.InventoryRepository,
	product *ports.Product,
	quantity int,
	orderID kernel.UUID,
	now time.Time,
) error {
	unit, err := inventoryRepo.GetForUpdate(ctx, product.SKU, product.BinLocation)
	if err != nil {
		return err
	}

	if err = unit.Reserve(quantity); err != nil {
		return err
	}

	if err = inventoryRepo.Update(ctx, unit); err != nil {
		return err
	}

	entry, err := inventory.NewLedgerEntry(
		kernel.NewUUID(), product.SKU, product.BinLocation,
		quantity, inventory.ReasonReserved, orderID, now,
	)
	if err != nil {
		return err
	}

	return inventoryRepo.AddLedgerEntry(ctx, entry)
}
