package taskrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picktask"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPickTaskRepository implements PickTaskRepository using GORM.
type GormPickTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPickTaskRepository creates a new GORM pick task repository.
func NewGormPickTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormPickTaskRepository {
	return &GormPickTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pick task to the database.
func (r *GormPickTaskRepository) Add(ctx context.Context, task *picktask.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Update saves an existing pick task to the database.
func (r *GormPickTaskRepository) Update(ctx context.Context, task *picktask.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Get retrieves a pick task by ID.
func (r *GormPickTaskRepository) Get(ctx context.Context, id kernel.UUID) (*picktask.Task, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a pick task by ID, locking the row until the
// surrounding transaction ends. Pickers racing for the same task serialize
// here.
func (r *GormPickTaskRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*picktask.Task, error) {
	return r.get(ctx, id, true)
}

func (r *GormPickTaskRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*picktask.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto TaskDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves every pick task belonging to an order,
// ordered by bin location for an efficient walking route.
func (r *GormPickTaskRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*picktask.Task, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Order("bin_location ASC, sku ASC").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*picktask.Task, 0, len(dtos))
	for _, dto := range dtos {
		task, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// DeleteAllByOrder removes every pick task belonging to an order.
func (r *GormPickTaskRepository) DeleteAllByOrder(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&TaskDTO{}, "order_id = ?", orderID.Bytes()).Error
}
