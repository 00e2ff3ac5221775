package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Mutating workflows load the aggregate with GetForUpdate so the row stays
// locked until the surrounding transaction commits.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and its items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate under a row lock
	// (SELECT ... FOR UPDATE). The lock is held until the surrounding
	// transaction ends; concurrent claimers serialize here.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountByPickerAndStatus counts the picker's orders in the given status.
	// Used inside the claim transaction to enforce the active-order limit.
	CountByPickerAndStatus(ctx context.Context, pickerID kernel.UUID, status order.Status) (int64, error)

	// GetAllInStatus retrieves all orders in the given status.
	// Used by the backorder release job to find orders waiting on stock.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
