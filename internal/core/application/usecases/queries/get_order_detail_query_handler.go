package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picktask"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderDetailQueryHandler retrieves one order with its items and pick
// tasks. The order and tasks are restored into their domain types so the
// progress calculator sees the same state the write side does.
type GetOrderDetailQueryHandler struct {
	db       *gorm.DB
	progress services.ProgressCalculator
}

// NewGetOrderDetailQueryHandler creates a handler for order detail queries.
func NewGetOrderDetailQueryHandler(
	db *gorm.DB,
	progress services.ProgressCalculator,
) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{db: db, progress: progress}
}

// Handle executes the detail query. Returns ObjectNotFoundError when no
// order exists with the requested ID.
func (h GetOrderDetailQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailQuery,
) (GetOrderDetailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	items, itemResponses, err := h.readItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	aggregate, resp, err := h.readOrder(ctx, query.OrderID(), items)
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	tasks, taskResponses, err := h.readTasks(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	progress, err := h.progress.Calculate(aggregate, tasks)
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	resp.Progress = progress
	resp.Items = itemResponses
	resp.Tasks = taskResponses

	return resp, nil
}

func (h GetOrderDetailQueryHandler) readOrder(
	ctx context.Context,
	orderID kernel.UUID,
	items []*order.Item,
) (*order.Order, GetOrderDetailQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, number, customer_id, priority, status, picker_id, packer_id,
			subtotal, tax, shipping, discount, total, currency,
			created_at, claimed_at, picked_at, packed_at, shipped_at, cancelled_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, GetOrderDetailQueryResponse{}, err
		}
		return nil, GetOrderDetailQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
	}

	var (
		id, customer                           uuid.UUID
		number, currency                       string
		priority, status                       int
		picker, packer                         uuid.NullUUID
		subtotal, tax, shipping                decimal.Decimal
		discount, total                        decimal.Decimal
		createdAt                              time.Time
		claimedAt, pickedAt, packedAt          *time.Time
		shippedAt, cancelledAt                 *time.Time
	)

	err = rows.Scan(
		&id, &number, &customer, &priority, &status, &picker, &packer,
		&subtotal, &tax, &shipping, &discount, &total, &currency,
		&createdAt, &claimedAt, &pickedAt, &packedAt, &shippedAt, &cancelledAt,
	)
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}

	orderUUID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}
	customerUUID, err := kernel.UUIDFromBytes(customer[:])
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}
	pickerUUID, err := optionalUUID(picker)
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}
	packerUUID, err := optionalUUID(packer)
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}

	subtotalMoney, err := kernel.NewMoney(subtotal)
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}
	taxMoney, err := kernel.NewMoney(tax)
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}
	shippingMoney, err := kernel.NewMoney(shipping)
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}
	discountMoney, err := kernel.NewMoney(discount)
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}
	totalMoney, err := kernel.NewMoney(total)
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}

	aggregate, err := order.RestoreOrder(
		orderUUID, number, customerUUID,
		order.Priority(priority), order.Status(status),
		pickerUUID, packerUUID, currency, items,
		subtotalMoney, taxMoney, shippingMoney, discountMoney, totalMoney,
		createdAt, claimedAt, pickedAt, packedAt, shippedAt, cancelledAt,
	)
	if err != nil {
		return nil, GetOrderDetailQueryResponse{}, err
	}

	resp := GetOrderDetailQueryResponse{
		ID:          orderUUID,
		Number:      number,
		CustomerID:  customerUUID,
		Priority:    order.Priority(priority).String(),
		Status:      order.Status(status).String(),
		PickerID:    pickerUUID,
		PackerID:    packerUUID,
		Subtotal:    subtotal.String(),
		Tax:         tax.String(),
		Shipping:    shipping.String(),
		Discount:    discount.String(),
		Total:       total.String(),
		Currency:    currency,
		CreatedAt:   createdAt,
		ClaimedAt:   claimedAt,
		PickedAt:    pickedAt,
		PackedAt:    packedAt,
		ShippedAt:   shippedAt,
		CancelledAt: cancelledAt,
	}

	return aggregate, resp, nil
}

func (h GetOrderDetailQueryHandler) readItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*order.Item, []OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, sku, name, quantity, picked_quantity, bin_location,
			unit_price, line_total, status
		FROM order_items
		WHERE order_id = ?
		ORDER BY sku ASC
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	items := make([]*order.Item, 0)
	responses := make([]OrderItemResponse, 0)

	for rows.Next() {
		var (
			id                   uuid.UUID
			sku, name, bin       string
			quantity, picked     int
			unitPrice, lineTotal decimal.Decimal
			status               int
		)

		err = rows.Scan(&id, &sku, &name, &quantity, &picked, &bin, &unitPrice, &lineTotal, &status)
		if err != nil {
			return nil, nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		unitPriceMoney, moneyErr := kernel.NewMoney(unitPrice)
		if moneyErr != nil {
			return nil, nil, moneyErr
		}
		lineTotalMoney, moneyErr := kernel.NewMoney(lineTotal)
		if moneyErr != nil {
			return nil, nil, moneyErr
		}

		item, restoreErr := order.RestoreItem(
			itemID, sku, name, quantity, picked, bin,
			unitPriceMoney, lineTotalMoney, order.ItemStatus(status),
		)
		if restoreErr != nil {
			return nil, nil, restoreErr
		}

		items = append(items, item)
		responses = append(responses, OrderItemResponse{
			ID:             itemID,
			SKU:            sku,
			Name:           name,
			Quantity:       quantity,
			PickedQuantity: picked,
			BinLocation:    bin,
			UnitPrice:      unitPrice.String(),
			LineTotal:      lineTotal.String(),
			Status:         order.ItemStatus(status).String(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return items, responses, nil
}

func (h GetOrderDetailQueryHandler) readTasks(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*picktask.Task, []PickTaskResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, order_item_id, sku, name, bin_location,
			required_quantity, picked_quantity, status, picker_id,
			started_at, completed_at, skipped_at, skip_reason
		FROM pick_tasks
		WHERE order_id = ?
		ORDER BY bin_location ASC, sku ASC
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	tasks := make([]*picktask.Task, 0)
	responses := make([]PickTaskResponse, 0)

	for rows.Next() {
		var (
			id, itemID                       uuid.UUID
			sku, name, bin                   string
			required, picked, status         int
			picker                           uuid.NullUUID
			startedAt, completedAt, skippedAt *time.Time
			skipReason                       *string
		)

		err = rows.Scan(
			&id, &itemID, &sku, &name, &bin,
			&required, &picked, &status, &picker,
			&startedAt, &completedAt, &skippedAt, &skipReason,
		)
		if err != nil {
			return nil, nil, err
		}

		taskID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		orderItemID, idErr := kernel.UUIDFromBytes(itemID[:])
		if idErr != nil {
			return nil, nil, idErr
		}
		pickerUUID, idErr := optionalUUID(picker)
		if idErr != nil {
			return nil, nil, idErr
		}

		task, restoreErr := picktask.RestoreTask(
			taskID, orderID, orderItemID, sku, name, bin,
			required, picked, picktask.Status(status), pickerUUID,
			startedAt, completedAt, skippedAt, skipReason,
		)
		if restoreErr != nil {
			return nil, nil, restoreErr
		}

		tasks = append(tasks, task)
		responses = append(responses, PickTaskResponse{
			ID:               taskID,
			OrderItemID:      orderItemID,
			SKU:              sku,
			Name:             name,
			BinLocation:      bin,
			RequiredQuantity: required,
			PickedQuantity:   picked,
			Status:           picktask.Status(status).String(),
			PickerID:         pickerUUID,
			StartedAt:        startedAt,
			CompletedAt:      completedAt,
			SkippedAt:        skippedAt,
			SkipReason:       skipReason,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return tasks, responses, nil
}

func optionalUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
