package repository

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// ResultRepository is the append-only list of exam results.
type ResultRepository struct {
	kv  KV
	log zerolog.Logger
	mu  sync.Mutex
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(kv KV, log zerolog.Logger) *ResultRepository {
	return &ResultRepository{kv: kv, log: log}
}

// GetAllResults returns every result, oldest first.
func (r *ResultRepository) GetAllResults(ctx context.Context) ([]model.ExamResult, error) {
	return readDocument(ctx, r.kv, r.log, config.StorageKey.Results(), func() []model.ExamResult {
		return []model.ExamResult{}
	})
}

// AppendResult adds res to the end of the list. A corrupt list is left
// untouched and reported as ErrCorruptDocument.
func (r *ResultRepository) AppendResult(ctx context.Context, res model.ExamResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	results, err := loadDocument(ctx, r.kv, config.StorageKey.Results(), func() []model.ExamResult {
		return []model.ExamResult{}
	})
	if err != nil {
		return err
	}
	return writeDocument(ctx, r.kv, config.StorageKey.Results(), append(results, res))
}

// HasResult reports whether a result with id is already stored.
func (r *ResultRepository) HasResult(ctx context.Context, id string) (bool, error) {
	results, err := r.GetAllResults(ctx)
	if err != nil {
		return false, err
	}
	for _, res := range results {
		if res.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Replace overwrites the whole history. Used by the seed tool.
func (r *ResultRepository) Replace(ctx context.Context, results []model.ExamResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if results == nil {
		results = []model.ExamResult{}
	}
	return writeDocument(ctx, r.kv, config.StorageKey.Results(), results)
}
