package inventoryrepo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// InventoryRepositoryIntegrationTestSuite provides integration tests for InventoryRepository
// using PostgreSQL containers to verify database persistence behavior.
type InventoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *inventoryrepo.GormInventoryRepository
	tracker    *MockAggregateTracker
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	sqlDB, err := sql.Open("postgres", connStr)
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&inventoryrepo.UnitDTO{}, &inventoryrepo.LedgerEntryDTO{}))
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE inventory_units, inventory_ledger").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = inventoryrepo.NewGormInventoryRepository(suite.db, suite.tracker)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestAddAndGetForUpdate_Roundtrip() {
	ctx := context.Background()

	unit := suite.createTestUnit("SKU-1001", "A-03-02", 10)
	suite.tracker.On("TrackAggregate", unit.ID(), unit).Once()

	err := suite.repository.Add(ctx, unit)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.GetForUpdate(ctx, "SKU-1001", "A-03-02")
	suite.Require().NoError(err)

	suite.Equal(unit.ID(), retrieved.ID())
	suite.Equal(10, retrieved.Quantity())
	suite.Equal(0, retrieved.ReservedQuantity())
	suite.Equal(10, retrieved.Available())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestGetForUpdate_UnknownStock_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetForUpdate(ctx, "SKU-9999", "Z-99-99")

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestUpdate_ReservationIsPersisted() {
	ctx := context.Background()

	unit := suite.createTestUnit("SKU-1001", "A-03-02", 10)
	suite.tracker.On("TrackAggregate", unit.ID(), unit).Twice()

	err := suite.repository.Add(ctx, unit)
	suite.Require().NoError(err)

	err = unit.Reserve(4)
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, unit)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.GetForUpdate(ctx, "SKU-1001", "A-03-02")
	suite.Require().NoError(err)
	suite.Equal(10, retrieved.Quantity())
	suite.Equal(4, retrieved.ReservedQuantity())
	suite.Equal(6, retrieved.Available())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestAdd_DuplicateSkuAndBin_Fails() {
	ctx := context.Background()

	first := suite.createTestUnit("SKU-1001", "A-03-02", 10)
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	err := suite.repository.Add(ctx, first)
	suite.Require().NoError(err)

	second := suite.createTestUnit("SKU-1001", "A-03-02", 5)
	err = suite.repository.Add(ctx, second)
	suite.Require().Error(err, "One row per SKU and bin")

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestAddLedgerEntry_AppendsMovements() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	now := time.Now().UTC()

	reserve, err := inventory.NewLedgerEntry(
		kernel.NewUUID(), "SKU-1001", "A-03-02", 4, inventory.ReasonReserved, orderID, now)
	suite.Require().NoError(err)
	release, err := inventory.NewLedgerEntry(
		kernel.NewUUID(), "SKU-1001", "A-03-02", -4, inventory.ReasonReleased, orderID, now)
	suite.Require().NoError(err)

	err = suite.repository.AddLedgerEntry(ctx, reserve)
	suite.Require().NoError(err)
	err = suite.repository.AddLedgerEntry(ctx, release)
	suite.Require().NoError(err)

	var count int64
	err = suite.db.Model(&inventoryrepo.LedgerEntryDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	var sum int64
	err = suite.db.Model(&inventoryrepo.LedgerEntryDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	suite.Require().NoError(err)
	suite.Equal(int64(0), sum, "Reserve and release should cancel out in the ledger")

	suite.tracker.AssertExpectations(suite.T())
}

// createTestUnit creates a stock record for testing purposes.
func (suite *InventoryRepositoryIntegrationTestSuite) createTestUnit(
	sku string,
	binLocation string,
	quantity int,
) *inventory.Unit {
	unit, err := inventory.NewUnit(kernel.NewUUID(), sku, binLocation, quantity)
	suite.Require().NoError(err)
	return unit
}

func TestInventoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepositoryIntegrationTestSuite))
}
