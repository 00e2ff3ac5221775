package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderDetailQueryIsNotConstructed = errors.New(
		"GetOrderDetailQuery must be created via NewGetOrderDetailQuery constructor",
	)
)

// GetOrderDetailQuery retrieves one order with its items, its pick tasks,
// and the derived fulfillment progress.
type GetOrderDetailQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderDetailQuery creates a query for one order's full state.
func NewGetOrderDetailQuery(orderID kernel.UUID) (GetOrderDetailQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailQuery{}, err
	}

	return GetOrderDetailQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderDetailQueryIsNotConstructed if validation fails.
func (q GetOrderDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailQueryIsNotConstructed)
}

// OrderID returns the order being read.
func (q GetOrderDetailQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderDetailQueryResponse is the full read model for one order.
// Progress is derived at read time, never stored.
type GetOrderDetailQueryResponse struct {
	ID          kernel.UUID
	Number      string
	CustomerID  kernel.UUID
	Priority    string
	Status      string
	PickerID    *kernel.UUID
	PackerID    *kernel.UUID
	Subtotal    string
	Tax         string
	Shipping    string
	Discount    string
	Total       string
	Currency    string
	Progress    int
	CreatedAt   time.Time
	ClaimedAt   *time.Time
	PickedAt    *time.Time
	PackedAt    *time.Time
	ShippedAt   *time.Time
	CancelledAt *time.Time
	Items       []OrderItemResponse
	Tasks       []PickTaskResponse
}

// OrderItemResponse is one SKU line of the order read model.
type OrderItemResponse struct {
	ID             kernel.UUID
	SKU            string
	Name           string
	Quantity       int
	PickedQuantity int
	BinLocation    string
	UnitPrice      string
	LineTotal      string
	Status         string
}

// PickTaskResponse is one pick task of the order read model.
type PickTaskResponse struct {
	ID               kernel.UUID
	OrderItemID      kernel.UUID
	SKU              string
	Name             string
	BinLocation      string
	RequiredQuantity int
	PickedQuantity   int
	Status           string
	PickerID         *kernel.UUID
	StartedAt        *time.Time
	CompletedAt      *time.Time
	SkippedAt        *time.Time
	SkipReason       *string
}
