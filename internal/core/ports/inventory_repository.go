package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
)

// InventoryRepository defines the persistence contract for stock records and
// the reservation audit ledger. Reservation arithmetic always runs on a
// row-locked record; GetForUpdate is the only read this interface offers.
type InventoryRepository interface {
	// Add persists a new stock record.
	Add(ctx context.Context, unit *inventory.Unit) error

	// Update persists changes to a stock record's counters.
	Update(ctx context.Context, unit *inventory.Unit) error

	// GetForUpdate retrieves the stock record for a SKU and bin under a row
	// lock (SELECT ... FOR UPDATE). Concurrent reservations for the same
	// stock serialize here.
	GetForUpdate(ctx context.Context, sku string, binLocation string) (*inventory.Unit, error)

	// AddLedgerEntry appends an audit record for one reservation movement.
	AddLedgerEntry(ctx context.Context, entry *inventory.LedgerEntry) error
}
