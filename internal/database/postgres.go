package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
)

// NewPostgresPool creates and validates a PostgreSQL connection pool. It
// warns when the kv_entries table is missing, which means cmd/migrate has
// not been run yet.
func NewPostgresPool(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxDBConns
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	var present bool
	if err := pool.QueryRow(ctx, `SELECT to_regclass('public.kv_entries') IS NOT NULL`).Scan(&present); err != nil {
		pool.Close()
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	if !present {
		log.Warn().Msg("kv_entries table missing; run cmd/migrate up")
	}

	log.Info().
		Int32("max_conns", cfg.MaxDBConns).
		Bool("schema_ready", present).
		Msg("PostgreSQL connected")

	return pool, nil
}
