package repository

import (
	"context"
	"database/sql"
	"errors"
)

// SQLiteKV stores documents in the kv_entries table of an embedded SQLite
// database opened by database.OpenSQLite.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV creates a new SQLiteKV.
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

func (r *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

func (r *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE
		 SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	return err
}
