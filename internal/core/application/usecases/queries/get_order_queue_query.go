package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueueQueryIsNotConstructed = errors.New(
		"GetOrderQueueQuery must be created via NewGetOrderQueueQuery constructor",
	)
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// GetOrderQueueQuery retrieves a page of the picking queue. Filters are
// optional and combine: status, priority, claim holder, and an
// unclaimed-only view that shows what a picker could claim right now.
//
// Results are ordered by priority descending, then creation time
// ascending, so the most urgent and longest-waiting orders surface first.
//
// Example:
//
//	query, err := NewGetOrderQueueQuery(QueueFilter{UnclaimedOnly: true}, 1, 50)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueueQueryHandler(db)
//	page, err := handler.Handle(ctx, query)
type GetOrderQueueQuery struct {
	filter   QueueFilter
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// QueueFilter narrows the queue view. Nil fields are not applied.
// UnclaimedOnly restricts the view to Pending orders with no claim holder
// and overrides the Status and PickerID fields.
type QueueFilter struct {
	Status        *order.Status
	Priority      *order.Priority
	PickerID      *kernel.UUID
	UnclaimedOnly bool
}

// NewGetOrderQueueQuery creates a paginated queue query. Pages are
// one-based; a zero page size falls back to the default.
func NewGetOrderQueueQuery(filter QueueFilter, page int, pageSize int) (GetOrderQueueQuery, error) {
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return GetOrderQueueQuery{}, err
		}
	}
	if filter.Priority != nil {
		if err := filter.Priority.Validate(); err != nil {
			return GetOrderQueueQuery{}, err
		}
	}
	if filter.PickerID != nil {
		if err := filter.PickerID.Validate(); err != nil {
			return GetOrderQueueQuery{}, errs.NewValueIsInvalidErrorWithCause("pickerID is invalid", err)
		}
	}
	if page < 1 {
		return GetOrderQueueQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if pageSize < 0 || pageSize > maxPageSize {
		return GetOrderQueueQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 0, maxPageSize)
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	return GetOrderQueueQuery{
		filter:   filter,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueueQueryIsNotConstructed if validation fails.
func (q GetOrderQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueueQueryIsNotConstructed)
}

// Filter returns the queue filter.
func (q GetOrderQueueQuery) Filter() QueueFilter {
	return q.filter
}

// Page returns the one-based page number.
func (q GetOrderQueueQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q GetOrderQueueQuery) PageSize() int {
	return q.pageSize
}

// GetOrderQueueQueryResponse is one row of the picking queue.
type GetOrderQueueQueryResponse struct {
	ID         kernel.UUID
	Number     string
	CustomerID kernel.UUID
	Priority   string
	Status     string
	PickerID   *kernel.UUID
	ItemCount  int
	Total      string
	Currency   string
	CreatedAt  time.Time
}
