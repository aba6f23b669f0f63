package repository

import (
	"context"

	"github.com/andy/smartbill/internal/domain"
)

// BillRepository manages the persisted bill collection. The collection is
// a single aggregate: it is read fully into memory and rewritten whole on
// every mutation. There is no partial update.
type BillRepository interface {
	// LoadAll returns the full collection in insertion order.
	// An absent collection is an empty one, not an error.
	LoadAll(ctx context.Context) ([]domain.Bill, error)

	// SaveAll replaces the persisted collection with the given one
	SaveAll(ctx context.Context, bills []domain.Bill) error

	// Append adds a bill to the end of the collection and persists it
	Append(ctx context.Context, bill *domain.Bill) error

	// Delete removes the bill with the given ID and persists the result.
	// It reports whether a bill was actually removed.
	Delete(ctx context.Context, id int64) (bool, error)

	// Clear drops the whole persisted collection
	Clear(ctx context.Context) error
}

// SettingsRepository manages the single persisted settings record
type SettingsRepository interface {
	// Load returns the persisted settings, or the default record if none
	// has been saved yet
	Load(ctx context.Context) (*domain.Settings, error)

	// Save persists the full settings record (last write wins)
	Save(ctx context.Context, settings *domain.Settings) error
}
