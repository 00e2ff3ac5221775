package queries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueueQueryHandler retrieves the picking queue from the database.
// Reads bypass the aggregates entirely; rows are projected straight into
// the response shape.
//
// Example:
//
//	handler := NewGetOrderQueueQueryHandler(db)
//	query, _ := NewGetOrderQueueQuery(QueueFilter{UnclaimedOnly: true}, 1, 50)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to read queue: %v", err)
//	    return err
//	}
type GetOrderQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueueQueryHandler creates a handler for queue queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueueQueryHandler(db *gorm.DB) GetOrderQueueQueryHandler {
	return GetOrderQueueQueryHandler{db: db}
}

// Handle executes the queue query. Urgent orders come first; within one
// priority the oldest order wins, so nothing starves at the back of the
// queue.
func (h GetOrderQueueQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQueueQuery,
) ([]GetOrderQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	filter := query.Filter()
	if filter.UnclaimedOnly {
		conditions = append(conditions, "status = ?", "picker_id IS NULL")
		args = append(args, order.Pending)
	} else {
		if filter.Status != nil {
			conditions = append(conditions, "status = ?")
			args = append(args, *filter.Status)
		}
		if filter.PickerID != nil {
			conditions = append(conditions, "picker_id = ?")
			args = append(args, filter.PickerID.Bytes())
		}
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, query.PageSize(), (query.Page()-1)*query.PageSize())

	responses := make([]GetOrderQueueQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			o.id,
			o.number,
			o.customer_id,
			o.priority,
			o.status,
			o.picker_id,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count,
			o.total,
			o.currency,
			o.created_at
		FROM orders o
		%s
		ORDER BY o.priority DESC, o.created_at ASC
		LIMIT ? OFFSET ?
	`, where), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp      GetOrderQueueQueryResponse
			id        uuid.UUID
			customer  uuid.UUID
			priority  int
			status    int
			picker    uuid.NullUUID
			itemCount int
			total     decimal.Decimal
			createdAt time.Time
		)

		err = rows.Scan(
			&id,
			&resp.Number,
			&customer,
			&priority,
			&status,
			&picker,
			&itemCount,
			&total,
			&resp.Currency,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		customerID, idErr := kernel.UUIDFromBytes(customer[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = orderID
		resp.CustomerID = customerID
		resp.Priority = order.Priority(priority).String()
		resp.Status = order.Status(status).String()
		resp.ItemCount = itemCount
		resp.Total = total.String()
		resp.CreatedAt = createdAt

		if picker.Valid {
			pickerID, idErr := kernel.UUIDFromBytes(picker.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.PickerID = &pickerID
		}

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
