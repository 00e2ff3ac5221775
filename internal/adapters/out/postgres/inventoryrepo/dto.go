// Package inventoryrepo provides data transfer objects and mapping functions for stock persistence.
// This package implements the repository pattern for inventory records and the reservation
// ledger, handling the conversion between domain entities and database representations.
package inventoryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UnitDTO represents the database structure for persisting stock records.
// One row per SKU and bin; the pair is unique so reservation arithmetic
// always targets a single row.
type UnitDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU              string    `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:idx_inventory_sku_bin"`
	BinLocation      string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_inventory_sku_bin"`
	Quantity         int       `gorm:"type:int;not null"`
	ReservedQuantity int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for stock record entities.
// Overrides GORM's default naming convention to use "inventory_units".
func (UnitDTO) TableName() string {
	return "inventory_units"
}

// LedgerEntryDTO represents the database structure for the reservation audit
// ledger. Rows are append-only; the current stock picture lives on UnitDTO.
type LedgerEntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU         string    `gorm:"column:sku;type:varchar(64);not null;index"`
	BinLocation string    `gorm:"type:varchar(32);not null"`
	Quantity    int       `gorm:"type:int;not null"`
	Reason      string    `gorm:"type:varchar(16);not null"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the database table name for ledger entries.
// Overrides GORM's default naming convention to use "inventory_ledger".
func (LedgerEntryDTO) TableName() string {
	return "inventory_ledger"
}

// fromDomain converts a stock record domain entity to its database representation.
func fromDomain(unit *inventory.Unit) UnitDTO {
	return UnitDTO{
		ID:               unit.ID().Bytes(),
		SKU:              unit.SKU(),
		BinLocation:      unit.BinLocation(),
		Quantity:         unit.Quantity(),
		ReservedQuantity: unit.ReservedQuantity(),
	}
}

// toDomain converts a database DTO to a stock record domain entity.
// Uses RestoreUnit to reconstruct the entity with its persisted counters.
func toDomain(dto UnitDTO) (*inventory.Unit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreUnit(id, dto.SKU, dto.BinLocation, dto.Quantity, dto.ReservedQuantity)
}

// ledgerFromDomain converts a ledger entry domain entity to its database representation.
func ledgerFromDomain(entry *inventory.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:          entry.ID().Bytes(),
		SKU:         entry.SKU(),
		BinLocation: entry.BinLocation(),
		Quantity:    entry.Quantity(),
		Reason:      entry.Reason(),
		OrderID:     entry.OrderID().Bytes(),
		CreatedAt:   entry.CreatedAt(),
	}
}
