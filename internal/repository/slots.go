package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/smartbill/internal/db"
)

// Slot keys. Each key holds one whole JSON document.
const (
	billsSlot    = "bills"
	settingsSlot = "smartBillSettings"
)

// getSlot reads the JSON document stored under key. The second return
// value reports whether the slot exists.
func getSlot(ctx context.Context, database *db.DB, key string) (string, bool, error) {
	var value string
	err := database.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return value, true, nil
}

// putSlot replaces the JSON document stored under key
func putSlot(ctx context.Context, database *db.DB, key, value string) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

// deleteSlot removes the document stored under key, if any
func deleteSlot(ctx context.Context, database *db.DB, key string) error {
	if _, err := database.ExecContext(ctx, "DELETE FROM slots WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to clear slot %q: %w", key, err)
	}
	return nil
}
