package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// NewSQLiteDB opens the embedded SQLite database and ensures the key-value
// table exists. The file path ":memory:" gives a throwaway database.
func NewSQLiteDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sql.DB, error) {
	db, err := OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", cfg.SQLitePath).
		Msg("SQLite opened")

	return db, nil
}

// OpenSQLite opens the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection serializes writers; modernc returns SQLITE_BUSY
	// otherwise, and ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}
