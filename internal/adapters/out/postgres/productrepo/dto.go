// Package productrepo provides the catalog lookup adapter backed by Postgres.
// The catalog is read-only from the fulfillment side; rows are maintained by
// an upstream product service.
package productrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for catalog entries.
type ProductDTO struct {
	SKU         string          `gorm:"column:sku;type:varchar(64);primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Active      bool            `gorm:"not null"`
	BinLocation string          `gorm:"type:varchar(32);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Currency    string          `gorm:"type:varchar(3);not null"`
}

// TableName specifies the database table name for catalog entries.
// Overrides GORM's default naming convention to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

// toPort converts a catalog DTO to the port read model.
func toPort(dto ProductDTO) (*ports.Product, error) {
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return &ports.Product{
		SKU:         dto.SKU,
		Name:        dto.Name,
		Active:      dto.Active,
		BinLocation: dto.BinLocation,
		UnitPrice:   unitPrice,
		Currency:    dto.Currency,
	}, nil
}
