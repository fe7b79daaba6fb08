package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV stores documents in the kv_entries JSONB table created by
// cmd/migrate.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// NewPostgresKV creates a new PostgresKV.
func NewPostgresKV(pool *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{pool: pool}
}

func (r *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM kv_entries WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

func (r *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO kv_entries (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE
		 SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value,
	)
	return err
}
