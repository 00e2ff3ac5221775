package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// Product is the catalog read model for one SKU: everything order creation
// needs to denormalize a line (display name, bin, price).
type Product struct {
	SKU         string
	Name        string
	Active      bool
	BinLocation string
	UnitPrice   kernel.Money
	Currency    string
}

// ProductCatalog defines the SKU lookup contract used during order creation.
type ProductCatalog interface {
	// GetBySKU retrieves the catalog entry for a SKU.
	// Returns ObjectNotFoundError if the SKU does not exist.
	GetBySKU(ctx context.Context, sku string) (*Product, error)
}
