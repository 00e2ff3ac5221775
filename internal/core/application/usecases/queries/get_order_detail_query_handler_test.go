package queries_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/taskrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picktask"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderDetailQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderDetailQueryHandler
	orderRepo *orderrepo.GormOrderRepository
	taskRepo  *taskrepo.GormPickTaskRepository
}

func (suite *GetOrderDetailQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	sqlDB, err := sql.Open("postgres", dsn)
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &taskrepo.TaskDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderDetailQueryHandler(db, services.NewProgressCalculator())
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.taskRepo = taskrepo.NewGormPickTaskRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderDetailQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderDetailQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, pick_tasks").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderDetailQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderDetailQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GetOrderDetailQueryHandlerTestSuite) TestHandle_PendingOrder_ZeroProgressNoTasks() {
	seeded := suite.seedOrder()

	query, err := queries.NewGetOrderDetailQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(seeded.ID(), result.ID)
	suite.Equal(seeded.Number(), result.Number)
	suite.Equal("Pending", result.Status)
	suite.Equal(0, result.Progress)
	suite.Len(result.Items, 2)
	suite.Empty(result.Tasks)
	suite.Nil(result.PickerID)
}

func (suite *GetOrderDetailQueryHandlerTestSuite) TestHandle_PickingOrder_ProgressReflectsCompletedTasks() {
	ctx := context.Background()

	seeded := suite.seedOrder()
	pickerID := kernel.NewUUID()
	err := seeded.Claim(pickerID, time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.orderRepo.Update(ctx, seeded)
	suite.Require().NoError(err)

	var tasks []*picktask.Task
	for _, item := range seeded.Items() {
		task, taskErr := picktask.NewTask(
			kernel.NewUUID(), seeded.ID(), item.ID(),
			item.SKU(), item.Name(), item.BinLocation(), item.Quantity(),
		)
		suite.Require().NoError(taskErr)
		tasks = append(tasks, task)

		err = suite.taskRepo.Add(ctx, task)
		suite.Require().NoError(err)
	}

	// Complete the first task
	err = tasks[0].Start(pickerID, time.Now().UTC())
	suite.Require().NoError(err)
	err = tasks[0].Complete(time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.taskRepo.Update(ctx, tasks[0])
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderDetailQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("Picking", result.Status)
	suite.Equal(50, result.Progress)
	suite.Require().NotNil(result.PickerID)
	suite.True(result.PickerID.IsEqual(pickerID))
	suite.NotNil(result.ClaimedAt)

	suite.Require().Len(result.Tasks, 2)
	statuses := []string{result.Tasks[0].Status, result.Tasks[1].Status}
	suite.Contains(statuses, "Completed")
	suite.Contains(statuses, "Pending")
}

func (suite *GetOrderDetailQueryHandlerTestSuite) TestHandle_MapsItemDetails() {
	seeded := suite.seedOrder()

	query, err := queries.NewGetOrderDetailQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, 2)

	// Items come back ordered by SKU
	first := result.Items[0]
	suite.Equal("SKU-1001", first.SKU)
	suite.Equal("Wireless Mouse", first.Name)
	suite.Equal(2, first.Quantity)
	suite.Equal(0, first.PickedQuantity)
	suite.Equal("A-03-02", first.BinLocation)
}

// seedOrder persists a pending two-item order.
func (suite *GetOrderDetailQueryHandlerTestSuite) seedOrder() *order.Order {
	price1, err := kernel.NewMoneyFromString("9.99")
	suite.Require().NoError(err)
	price2, err := kernel.NewMoneyFromString("24.50")
	suite.Require().NoError(err)

	item1, err := order.NewItem(kernel.NewUUID(), "SKU-1001", "Wireless Mouse", 2, "A-03-02", price1)
	suite.Require().NoError(err)
	item2, err := order.NewItem(kernel.NewUUID(), "SKU-1002", "USB Hub", 1, "B-01-04", price2)
	suite.Require().NoError(err)

	seeded, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), order.PriorityNormal, "USD",
		[]*order.Item{item1, item2},
		kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.ZeroMoney(),
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), seeded)
	suite.Require().NoError(err)

	return seeded
}

func TestGetOrderDetailQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderDetailQueryHandlerTestSuite))
}
