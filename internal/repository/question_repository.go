package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// QuestionRepository is the question bank, stored as one JSON array.
type QuestionRepository struct {
	kv  KV
	log zerolog.Logger
	mu  sync.Mutex // serializes read-modify-write of the bank
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(kv KV, log zerolog.Logger) *QuestionRepository {
	return &QuestionRepository{kv: kv, log: log}
}

// GetAllQuestions returns the bank in insertion order. A never-written bank
// reads as the initial questions.
func (r *QuestionRepository) GetAllQuestions(ctx context.Context) ([]model.Question, error) {
	return readDocument(ctx, r.kv, r.log, config.StorageKey.Questions(), InitialQuestions)
}

// AppendQuestion adds q to the end of the bank. A corrupt bank is left
// untouched and reported as ErrCorruptDocument.
func (r *QuestionRepository) AppendQuestion(ctx context.Context, q model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	questions, err := loadDocument(ctx, r.kv, config.StorageKey.Questions(), InitialQuestions)
	if err != nil {
		return err
	}
	return writeDocument(ctx, r.kv, config.StorageKey.Questions(), append(questions, q))
}

// EnsureSeeded writes the initial questions if the bank has never been
// stored. It reports whether it wrote anything.
func (r *QuestionRepository) EnsureSeeded(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := r.kv.Get(ctx, config.StorageKey.Questions())
	if err == nil && len(raw) > 0 {
		return false, nil
	}
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return false, err
	}
	if err := writeDocument(ctx, r.kv, config.StorageKey.Questions(), InitialQuestions()); err != nil {
		return false, err
	}
	return true, nil
}

// Replace overwrites the whole bank. Used by the seed tool.
func (r *QuestionRepository) Replace(ctx context.Context, questions []model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if questions == nil {
		questions = []model.Question{}
	}
	return writeDocument(ctx, r.kv, config.StorageKey.Questions(), questions)
}
