package service

import (
	"context"
	"errors"

	"github.com/stemsi/gatemock-backend/internal/model"
)

// ErrStorageUnavailable wraps failures of the backing store.
var ErrStorageUnavailable = errors.New("storage unavailable")

// QuestionBank is the question source consulted when an exam starts.
type QuestionBank interface {
	GetAllQuestions(ctx context.Context) ([]model.Question, error)
	AppendQuestion(ctx context.Context, q model.Question) error
}

// ResultStore is the append-only result history.
type ResultStore interface {
	AppendResult(ctx context.Context, res model.ExamResult) error
	GetAllResults(ctx context.Context) ([]model.ExamResult, error)
	HasResult(ctx context.Context, id string) (bool, error)
}

// StatsStore holds the aggregate statistics document.
type StatsStore interface {
	Read(ctx context.Context) (model.UserStatistics, error)
	Write(ctx context.Context, stats model.UserStatistics) error
}
