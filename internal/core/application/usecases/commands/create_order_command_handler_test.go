package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixturePricing(t *testing.T) services.PricingCalculator {
	t.Helper()
	fee, err := kernel.NewMoneyFromString("4.99")
	require.NoError(t, err)
	pricing, err := services.NewPricingCalculator(decimal.NewFromFloat(0.0825), fee)
	require.NoError(t, err)
	return pricing
}

func fixtureProduct(t *testing.T, sku string) *ports.Product {
	t.Helper()
	price, err := kernel.NewMoneyFromString("19.99")
	require.NoError(t, err)
	return &ports.Product{
		SKU:         sku,
		Name:        "Wireless Mouse",
		Active:      true,
		BinLocation: "A-03-02",
		UnitPrice:   price,
		Currency:    "USD",
	}
}

func fixtureCreateCommand(t *testing.T, quantity int) commands.CreateOrderCommand {
	t.Helper()
	line, err := commands.NewOrderLine("SKU-1001", quantity)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), order.PriorityNormal,
		[]commands.OrderLine{line}, kernel.ZeroMoney(),
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := fixtureCreateCommand(t, 2)
	product := fixtureProduct(t, "SKU-1001")
	unit := fixtureUnit(t, "SKU-1001", 10)

	catalog := new(MockProductCatalog)
	catalog.On("GetBySKU", ctx, "SKU-1001").Return(product, nil).Once()

	orderRepo := new(MockOrderRepository)
	inventoryRepo := new(MockInventoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("GetForUpdate", ctx, "SKU-1001", "A-03-02").Return(unit, nil).Once(),
		inventoryRepo.On("Update", ctx, unit).Return(nil).Once(),
		inventoryRepo.On("AddLedgerEntry", ctx, mock.AnythingOfType("*inventory.LedgerEntry")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog, fixturePricing(t))
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// The reservation was taken on the locked record.
	require.Equal(t, 2, unit.ReservedQuantity())
	require.Equal(t, 8, unit.Available())

	// Totals come from catalog prices: 2 x 19.99 = 39.98 subtotal,
	// 3.2984 tax at 8.25%, 4.99 shipping.
	added := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	require.Equal(t, "39.98", added.Subtotal().String())
	require.Equal(t, "3.2984", added.Tax().String())
	require.Equal(t, "4.99", added.Shipping().String())
	require.Equal(t, "48.2684", added.Total().String())
	require.Equal(t, order.Pending, added.Status())

	catalog.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	inventoryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownSKU(t *testing.T) {
	ctx := t.Context()
	cmd := fixtureCreateCommand(t, 2)

	catalog := new(MockProductCatalog)
	catalog.On("GetBySKU", ctx, "SKU-1001").
		Return(nil, errs.NewObjectNotFoundError("sku", "SKU-1001")).Once()

	uow := new(MockUoW)
	inventoryRepo := new(MockInventoryRepository)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog, fixturePricing(t))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_InactiveSKU(t *testing.T) {
	ctx := t.Context()
	cmd := fixtureCreateCommand(t, 2)
	product := fixtureProduct(t, "SKU-1001")
	product.Active = false

	catalog := new(MockProductCatalog)
	catalog.On("GetBySKU", ctx, "SKU-1001").Return(product, nil).Once()

	uow := new(MockUoW)
	inventoryRepo := new(MockInventoryRepository)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog, fixturePricing(t))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	cmd := fixtureCreateCommand(t, 8)
	product := fixtureProduct(t, "SKU-1001")
	unit := fixtureUnit(t, "SKU-1001", 5)

	catalog := new(MockProductCatalog)
	catalog.On("GetBySKU", ctx, "SKU-1001").Return(product, nil).Once()

	inventoryRepo := new(MockInventoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("GetForUpdate", ctx, "SKU-1001", "A-03-02").Return(unit, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog, fixturePricing(t))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)

	// The failed reservation left the counter untouched.
	require.Equal(t, 0, unit.ReservedQuantity())

	inventoryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockProductCatalog), fixturePricing(t))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
