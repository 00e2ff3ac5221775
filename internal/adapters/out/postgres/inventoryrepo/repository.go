package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stock record to the database.
func (r *GormInventoryRepository) Add(ctx context.Context, unit *inventory.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := fromDomain(unit)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(unit.ID(), unit)
	return nil
}

// Update saves a stock record's counters to the database.
func (r *GormInventoryRepository) Update(ctx context.Context, unit *inventory.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := fromDomain(unit)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(unit.ID(), unit)
	return nil
}

// GetForUpdate retrieves the stock record for a SKU and bin, locking the row
// until the surrounding transaction ends. Concurrent reservations for the
// same stock serialize here.
func (r *GormInventoryRepository) GetForUpdate(
	ctx context.Context,
	sku string,
	binLocation string,
) (*inventory.Unit, error) {
	if sku == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}
	if binLocation == "" {
		return nil, errs.NewValueIsRequiredError("binLocation")
	}

	var dto UnitDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "sku = ? AND bin_location = ?", sku, binLocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sku", fmt.Sprintf("%s at %s", sku, binLocation))
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddLedgerEntry appends an audit record for one reservation movement.
func (r *GormInventoryRepository) AddLedgerEntry(ctx context.Context, entry *inventory.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := ledgerFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
