// Package taskrepo provides data transfer objects and mapping functions for pick task persistence.
// This package implements the repository pattern for pick tasks, handling the conversion
// between domain entities and database representations.
package taskrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picktask"

	"github.com/google/uuid"
)

// TaskDTO represents the database structure for persisting pick tasks.
// Indexed by order so claiming can regenerate an order's task set in one pass.
type TaskDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderItemID      uuid.UUID  `gorm:"type:uuid;not null"`
	SKU              string     `gorm:"column:sku;type:varchar(64);not null"`
	Name             string     `gorm:"type:varchar(255);not null"`
	BinLocation      string     `gorm:"type:varchar(32);not null"`
	RequiredQuantity int        `gorm:"type:int;not null"`
	PickedQuantity   int        `gorm:"type:int;not null"`
	Status           int        `gorm:"type:int;not null;index"`
	PickerID         *uuid.UUID `gorm:"type:uuid"`
	StartedAt        *time.Time
	CompletedAt      *time.Time
	SkippedAt        *time.Time
	SkipReason       *string `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for pick task entities.
// Overrides GORM's default naming convention to use "pick_tasks".
func (TaskDTO) TableName() string {
	return "pick_tasks"
}

// fromDomain converts a pick task domain entity to its database representation.
func fromDomain(task *picktask.Task) TaskDTO {
	var pickerID *uuid.UUID
	if id := task.Picker(); id != nil {
		raw := id.Bytes()
		pickerID = &raw
	}

	return TaskDTO{
		ID:               task.ID().Bytes(),
		OrderID:          task.OrderID().Bytes(),
		OrderItemID:      task.OrderItemID().Bytes(),
		SKU:              task.SKU(),
		Name:             task.Name(),
		BinLocation:      task.BinLocation(),
		RequiredQuantity: task.RequiredQuantity(),
		PickedQuantity:   task.PickedQuantity(),
		Status:           int(task.Status()),
		PickerID:         pickerID,
		StartedAt:        task.StartedAt(),
		CompletedAt:      task.CompletedAt(),
		SkippedAt:        task.SkippedAt(),
		SkipReason:       task.SkipReason(),
	}
}

// toDomain converts a database DTO to a pick task domain entity.
// Uses RestoreTask to reconstruct the entity with its persisted state.
func toDomain(dto TaskDTO) (*picktask.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}

	var pickerID *kernel.UUID
	if dto.PickerID != nil {
		pID, pickerErr := kernel.UUIDFromBytes((*dto.PickerID)[:])
		if pickerErr != nil {
			return nil, pickerErr
		}
		pickerID = &pID
	}

	return picktask.RestoreTask(
		id, orderID, orderItemID,
		dto.SKU, dto.Name, dto.BinLocation,
		dto.RequiredQuantity, dto.PickedQuantity,
		picktask.Status(dto.Status), pickerID,
		dto.StartedAt, dto.CompletedAt, dto.SkippedAt,
		dto.SkipReason,
	)
}
