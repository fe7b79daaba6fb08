package repository

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// StatsRepository holds the single statistics document.
type StatsRepository struct {
	kv  KV
	log zerolog.Logger
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(kv KV, log zerolog.Logger) *StatsRepository {
	return &StatsRepository{kv: kv, log: log}
}

// Read returns the stored statistics, or the defaults if none were saved.
func (r *StatsRepository) Read(ctx context.Context) (model.UserStatistics, error) {
	return readDocument(ctx, r.kv, r.log, config.StorageKey.Stats(), model.DefaultStatistics)
}

// Write replaces the statistics document.
func (r *StatsRepository) Write(ctx context.Context, stats model.UserStatistics) error {
	return writeDocument(ctx, r.kv, config.StorageKey.Stats(), stats)
}
