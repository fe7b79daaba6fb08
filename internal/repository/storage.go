package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/database"
)

// Storage is the opened key-value backend selected by configuration.
type Storage struct {
	KV     KV
	Driver string

	// Redis is set when the redis driver is used, for event fan-out.
	Redis *redis.Client

	closers []func()
}

// Close releases the backend connections.
func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenStorage connects the backend named by cfg.StorageDriver and applies
// the configured key prefix.
func OpenStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	s := &Storage{Driver: cfg.StorageDriver}

	switch cfg.StorageDriver {
	case config.StorageRedis:
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		s.KV = NewRedisKV(rdb)
		s.Redis = rdb
		s.closers = append(s.closers, func() { _ = rdb.Close() })

	case config.StoragePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		s.KV = NewPostgresKV(pool)
		s.closers = append(s.closers, pool.Close)

	case config.StorageSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		s.KV = NewSQLiteKV(db)
		s.closers = append(s.closers, func() { _ = db.Close() })

	case config.StorageMemory:
		log.Warn().Msg("Using in-memory storage; nothing survives a restart")
		s.KV = NewMemoryKV()

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	s.KV = WithPrefix(s.KV, cfg.StorageKeyPrefix)
	return s, nil
}
