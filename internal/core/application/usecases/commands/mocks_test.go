package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picktask"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByPickerAndStatus(
	ctx context.Context, pickerID kernel.UUID, status order.Status,
) (int64, error) {
	args := m.Called(ctx, pickerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPickTaskRepository struct{ mock.Mock }

func (m *MockPickTaskRepository) Add(ctx context.Context, task *picktask.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockPickTaskRepository) Update(ctx context.Context, task *picktask.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockPickTaskRepository) Get(ctx context.Context, id kernel.UUID) (*picktask.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*picktask.Task), args.Error(1)
}

func (m *MockPickTaskRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*picktask.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*picktask.Task), args.Error(1)
}

func (m *MockPickTaskRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*picktask.Task, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*picktask.Task), args.Error(1)
}

func (m *MockPickTaskRepository) DeleteAllByOrder(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, unit *inventory.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, unit *inventory.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetForUpdate(
	ctx context.Context, sku string, binLocation string,
) (*inventory.Unit, error) {
	args := m.Called(ctx, sku, binLocation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Unit), args.Error(1)
}

func (m *MockInventoryRepository) AddLedgerEntry(ctx context.Context, entry *inventory.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) GetBySKU(ctx context.Context, sku string) (*ports.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Product), args.Error(1)
}

type MockTxManager struct{ mock.Mock }

func (m *MockTxManager) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxManager) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ MockTxManager }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTaskUoW struct{ MockTxManager }

func (m *MockTaskUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockTaskUoW) PickTaskRepository() ports.PickTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.PickTaskRepository)
}

type MockTaskUoWFactory struct{ mock.Mock }

func (m *MockTaskUoWFactory) Create() commands.TaskUoW {
	args := m.Called()
	return args.Get(0).(commands.TaskUoW)
}

type MockUoW struct{ MockTxManager }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PickTaskRepository() ports.PickTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.PickTaskRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// Fixtures shared by the handler tests.

func fixtureItem(t *testing.T, sku string, quantity int) *order.Item {
	t.Helper()
	price, err := kernel.NewMoneyFromString("9.99")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), sku, "Wireless Mouse", quantity, "A-03-02", price)
	require.NoError(t, err)
	return item
}

func fixturePendingOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []*order.Item{fixtureItem(t, "SKU-1001", 2)}
	}
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), order.PriorityNormal, "USD",
		items, kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.ZeroMoney(),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func fixtureClaimedOrder(t *testing.T, pickerID kernel.UUID, items ...*order.Item) *order.Order {
	t.Helper()
	o := fixturePendingOrder(t, items...)
	require.NoError(t, o.Claim(pickerID, time.Now().UTC()))
	return o
}

func fixtureTaskFor(t *testing.T, o *order.Order, item *order.Item) *picktask.Task {
	t.Helper()
	task, err := picktask.NewTask(
		kernel.NewUUID(), o.ID(), item.ID(),
		item.SKU(), item.Name(), item.BinLocation(), item.Quantity(),
	)
	require.NoError(t, err)
	return task
}

func fixtureUnit(t *testing.T, sku string, quantity int) *inventory.Unit {
	t.Helper()
	unit, err := inventory.NewUnit(kernel.NewUUID(), sku, "A-03-02", quantity)
	require.NoError(t, err)
	return unit
}
