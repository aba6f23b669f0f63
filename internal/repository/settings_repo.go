package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andy/smartbill/internal/db"
	"github.com/andy/smartbill/internal/domain"
)

// SettingsRepo stores the settings record as one JSON object in the
// "smartBillSettings" slot.
type SettingsRepo struct {
	db *db.DB
}

// NewSettingsRepo creates a new SettingsRepo
func NewSettingsRepo(database *db.DB) *SettingsRepo {
	return &SettingsRepo{db: database}
}

// Load returns the persisted settings, or the default record when nothing
// has been saved yet. A record that fails to decode is an error.
func (r *SettingsRepo) Load(ctx context.Context) (*domain.Settings, error) {
	raw, ok, err := getSlot(ctx, r.db, settingsSlot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.DefaultSettings(), nil
	}

	settings := domain.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), settings); err != nil {
		return nil, fmt.Errorf("settings record is corrupt: %w", err)
	}
	return settings, nil
}

// Save persists the full settings record
func (r *SettingsRepo) Save(ctx context.Context, settings *domain.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return putSlot(ctx, r.db, settingsSlot, string(raw))
}
