// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and claim holder.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number      string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Priority    int             `gorm:"type:int;not null"`
	Status      int             `gorm:"type:int;not null;index"`
	PickerID    *uuid.UUID      `gorm:"type:uuid;index"`
	PackerID    *uuid.UUID      `gorm:"type:uuid"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Tax         decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Shipping    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Discount    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	ClaimedAt   *time.Time
	PickedAt    *time.Time
	PackedAt    *time.Time
	ShippedAt   *time.Time
	CancelledAt *time.Time
	Items       []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents the database structure for persisting order items.
// Links to the order via foreign key; pricing is denormalized at creation
// so catalog changes never rewrite history.
type ItemDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU            string          `gorm:"column:sku;type:varchar(64);not null"`
	Name           string          `gorm:"type:varchar(255);not null"`
	Quantity       int             `gorm:"type:int;not null"`
	PickedQuantity int             `gorm:"type:int;not null"`
	BinLocation    string          `gorm:"type:varchar(32);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	LineTotal      decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Status         int             `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order item entities.
// Overrides GORM's default naming convention to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including items and optional picker/packer assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var pickerID *uuid.UUID
	if id := aggregate.Picker(); id != nil {
		raw := id.Bytes()
		pickerID = &raw
	}
	var packerID *uuid.UUID
	if id := aggregate.Packer(); id != nil {
		raw := id.Bytes()
		packerID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:             item.ID().Bytes(),
			OrderID:        orderID,
			SKU:            item.SKU(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			PickedQuantity: item.PickedQuantity(),
			BinLocation:    item.BinLocation(),
			UnitPrice:      item.UnitPrice().Decimal(),
			LineTotal:      item.LineTotal().Decimal(),
			Status:         int(item.Status()),
		})
	}

	return OrderDTO{
		ID:          orderID,
		Number:      aggregate.Number(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		Priority:    int(aggregate.Priority()),
		Status:      int(aggregate.Status()),
		PickerID:    pickerID,
		PackerID:    packerID,
		Subtotal:    aggregate.Subtotal().Decimal(),
		Tax:         aggregate.Tax().Decimal(),
		Shipping:    aggregate.Shipping().Decimal(),
		Discount:    aggregate.Discount().Decimal(),
		Total:       aggregate.Total().Decimal(),
		Currency:    aggregate.Currency(),
		CreatedAt:   aggregate.CreatedAt(),
		ClaimedAt:   aggregate.ClaimedAt(),
		PickedAt:    aggregate.PickedAt(),
		PackedAt:    aggregate.PackedAt(),
		ShippedAt:   aggregate.ShippedAt(),
		CancelledAt: aggregate.CancelledAt(),
		Items:       items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	pickerID, err := optionalToDomain(dto.PickerID)
	if err != nil {
		return nil, err
	}
	packerID, err := optionalToDomain(dto.PackerID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoney(dto.Tax)
	if err != nil {
		return nil, err
	}
	shipping, err := kernel.NewMoney(dto.Shipping)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.Number, customerID,
		order.Priority(dto.Priority), order.Status(dto.Status),
		pickerID, packerID, dto.Currency, items,
		subtotal, tax, shipping, discount, total,
		dto.CreatedAt,
		dto.ClaimedAt, dto.PickedAt, dto.PackedAt, dto.ShippedAt, dto.CancelledAt,
	)
}

// itemToDomain converts an order item DTO to its domain entity.
// Uses RestoreItem to reconstruct the entity with its persisted picking state.
func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	lineTotal, err := kernel.NewMoney(dto.LineTotal)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id, dto.SKU, dto.Name, dto.Quantity, dto.PickedQuantity,
		dto.BinLocation, unitPrice, lineTotal, order.ItemStatus(dto.Status),
	)
}

func optionalToDomain(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
