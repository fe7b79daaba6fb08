package repository

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// PendingWriteRepository parks result writes that have not been persisted
// yet, so the retry worker can resume them after a restart.
type PendingWriteRepository struct {
	kv  KV
	log zerolog.Logger
}

// NewPendingWriteRepository creates a new PendingWriteRepository.
func NewPendingWriteRepository(kv KV, log zerolog.Logger) *PendingWriteRepository {
	return &PendingWriteRepository{kv: kv, log: log}
}

// Load returns the parked writes.
func (r *PendingWriteRepository) Load(ctx context.Context) ([]model.PendingWrite, error) {
	return readDocument(ctx, r.kv, r.log, config.WorkerKey.PendingWritesQueue, func() []model.PendingWrite {
		return []model.PendingWrite{}
	})
}

// Save replaces the parked writes.
func (r *PendingWriteRepository) Save(ctx context.Context, pending []model.PendingWrite) error {
	if pending == nil {
		pending = []model.PendingWrite{}
	}
	return writeDocument(ctx, r.kv, config.WorkerKey.PendingWritesQueue, pending)
}
