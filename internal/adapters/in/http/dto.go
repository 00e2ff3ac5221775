package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// Error is the JSON error envelope returned by every endpoint on failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
// Priority defaults to Normal and the discount to zero when omitted.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Priority   string             `json:"priority,omitempty"`
	Discount   string             `json:"discount,omitempty"`
	Lines      []OrderLineRequest `json:"lines"`
}

// OrderLineRequest is one requested SKU and quantity.
type OrderLineRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// CreateOrderResponse returns the server-assigned order identifier.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// PickerRequest carries the picker acting on an order or task.
type PickerRequest struct {
	PickerID string `json:"picker_id"`
}

// UpdateOrderStatusRequest is the body of POST /api/v1/orders/:orderID/status.
// PackerID is required exactly when the target status is Packing.
type UpdateOrderStatusRequest struct {
	Status   string `json:"status"`
	PackerID string `json:"packer_id,omitempty"`
}

// UpdatePickedQuantityRequest is the body of POST /api/v1/tasks/:taskID/quantity.
type UpdatePickedQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SkipPickTaskRequest is the body of POST /api/v1/tasks/:taskID/skip.
type SkipPickTaskRequest struct {
	Reason string `json:"reason"`
}

// QueueEntry is one row of GET /api/v1/orders.
type QueueEntry struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	CustomerID string    `json:"customer_id"`
	Priority   string    `json:"priority"`
	Status     string    `json:"status"`
	PickerID   *string   `json:"picker_id,omitempty"`
	ItemCount  int       `json:"item_count"`
	Total      string    `json:"total"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderDetail is the response of GET /api/v1/orders/:orderID.
type OrderDetail struct {
	ID          string       `json:"id"`
	Number      string       `json:"number"`
	CustomerID  string       `json:"customer_id"`
	Priority    string       `json:"priority"`
	Status      string       `json:"status"`
	PickerID    *string      `json:"picker_id,omitempty"`
	PackerID    *string      `json:"packer_id,omitempty"`
	Subtotal    string       `json:"subtotal"`
	Tax         string       `json:"tax"`
	Shipping    string       `json:"shipping"`
	Discount    string       `json:"discount"`
	Total       string       `json:"total"`
	Currency    string       `json:"currency"`
	Progress    int          `json:"progress"`
	CreatedAt   time.Time    `json:"created_at"`
	ClaimedAt   *time.Time   `json:"claimed_at,omitempty"`
	PickedAt    *time.Time   `json:"picked_at,omitempty"`
	PackedAt    *time.Time   `json:"packed_at,omitempty"`
	ShippedAt   *time.Time   `json:"shipped_at,omitempty"`
	CancelledAt *time.Time  `json:"cancelled_at,omitempty"`
	Items       []OrderItem `json:"items"`
	Tasks       []PickTask  `json:"tasks"`
}

// OrderItem is one SKU line of the order detail.
type OrderItem struct {
	ID             string `json:"id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	PickedQuantity int    `json:"picked_quantity"`
	BinLocation    string `json:"bin_location"`
	UnitPrice      string `json:"unit_price"`
	LineTotal      string `json:"line_total"`
	Status         string `json:"status"`
}

// PickTask is one pick task of the order detail.
type PickTask struct {
	ID               string     `json:"id"`
	OrderItemID      string     `json:"order_item_id"`
	SKU              string     `json:"sku"`
	Name             string     `json:"name"`
	BinLocation      string     `json:"bin_location"`
	RequiredQuantity int        `json:"required_quantity"`
	PickedQuantity   int        `json:"picked_quantity"`
	Status           string     `json:"status"`
	PickerID         *string    `json:"picker_id,omitempty"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	SkippedAt        *time.Time `json:"skipped_at,omitempty"`
	SkipReason       *string    `json:"skip_reason,omitempty"`
}

// orderDetailFromQuery converts the read model into the HTTP representation.
func orderDetailFromQuery(detail queries.GetOrderDetailQueryResponse) OrderDetail {
	items := make([]OrderItem, len(detail.Items))
	for i, item := range detail.Items {
		items[i] = OrderItem{
			ID:             item.ID.String(),
			SKU:            item.SKU,
			Name:           item.Name,
			Quantity:       item.Quantity,
			PickedQuantity: item.PickedQuantity,
			BinLocation:    item.BinLocation,
			UnitPrice:      item.UnitPrice,
			LineTotal:      item.LineTotal,
			Status:         item.Status,
		}
	}

	tasks := make([]PickTask, len(detail.Tasks))
	for i, task := range detail.Tasks {
		tasks[i] = PickTask{
			ID:               task.ID.String(),
			OrderItemID:      task.OrderItemID.String(),
			SKU:              task.SKU,
			Name:             task.Name,
			BinLocation:      task.BinLocation,
			RequiredQuantity: task.RequiredQuantity,
			PickedQuantity:   task.PickedQuantity,
			Status:           task.Status,
			PickerID:         optionalUUIDString(task.PickerID),
			StartedAt:        task.StartedAt,
			CompletedAt:      task.CompletedAt,
			SkippedAt:        task.SkippedAt,
			SkipReason:       task.SkipReason,
		}
	}

	return OrderDetail{
		ID:          detail.ID.String(),
		Number:      detail.Number,
		CustomerID:  detail.CustomerID.String(),
		Priority:    detail.Priority,
		Status:      detail.Status,
		PickerID:    optionalUUIDString(detail.PickerID),
		PackerID:    optionalUUIDString(detail.PackerID),
		Subtotal:    detail.Subtotal,
		Tax:         detail.Tax,
		Shipping:    detail.Shipping,
		Discount:    detail.Discount,
		Total:       detail.Total,
		Currency:    detail.Currency,
		Progress:    detail.Progress,
		CreatedAt:   detail.CreatedAt,
		ClaimedAt:   detail.ClaimedAt,
		PickedAt:    detail.PickedAt,
		PackedAt:    detail.PackedAt,
		ShippedAt:   detail.ShippedAt,
		CancelledAt: detail.CancelledAt,
		Items:       items,
		Tasks:       tasks,
	}
}
