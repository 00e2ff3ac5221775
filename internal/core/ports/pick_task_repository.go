package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picktask"
)

// PickTaskRepository defines the persistence contract for pick tasks.
// Task mutations load the row with GetForUpdate so two pickers racing for
// the same task serialize on the database lock.
type PickTaskRepository interface {
	// Add persists a new pick task.
	Add(ctx context.Context, task *picktask.Task) error

	// Update persists changes to an existing pick task.
	Update(ctx context.Context, task *picktask.Task) error

	// Get retrieves a pick task by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*picktask.Task, error)

	// GetForUpdate retrieves a pick task under a row lock
	// (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id kernel.UUID) (*picktask.Task, error)

	// GetAllByOrder retrieves every pick task belonging to an order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*picktask.Task, error)

	// DeleteAllByOrder removes every pick task belonging to an order.
	// Claiming regenerates the task set and discards stale tasks first.
	DeleteAllByOrder(ctx context.Context, orderID kernel.UUID) error
}
