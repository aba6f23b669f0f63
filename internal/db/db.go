package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

type DB struct {
	*sql.DB
}

// Open opens an encrypted SQLite store with the given password.
// dbPath is the full path to the store file.
func Open(dbPath, password string) (*DB, error) {
	// Create parent directories if they don't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	// Build connection string with encryption key
	connStr := fmt.Sprintf("%s?_key=%s", dbPath, password)

	// Open the database
	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Enable WAL mode so slot rewrites are atomic
	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Ping to verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}

// OpenWithDefaults opens the store at the default location
// ~/.config/smartbill/smartbill.db
func OpenWithDefaults(password string) (*DB, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	dbPath := filepath.Join(homeDir, ".config", "smartbill", "smartbill.db")
	return Open(dbPath, password)
}

// Close closes the store connection
func (db *DB) Close() error {
	return db.DB.Close()
}
