package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// PersistError reports which write of a result failed. The result itself is
// still valid and is retried in the background.
type PersistError struct {
	Stage model.PersistStage
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Stage, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Warning is the user-facing notice for a failed write.
func (e *PersistError) Warning() string {
	if e.Stage == model.StageStats {
		return "Your statistics could not be updated yet. The update will be retried."
	}
	return "Your result could not be saved yet. Saving will be retried."
}

// RetryQueue accepts writes that should be attempted again later.
type RetryQueue interface {
	Enqueue(pw model.PendingWrite)
}

// RecorderService persists scored results and keeps the statistics in step.
type RecorderService struct {
	results ResultStore
	stats   StatsStore
	retry   RetryQueue
	log     zerolog.Logger

	statsMu sync.Mutex // serializes read-modify-write of the statistics
}

// NewRecorderService creates a new RecorderService. retry may be nil, in
// which case failed writes are only logged.
func NewRecorderService(results ResultStore, stats StatsStore, retry RetryQueue, log zerolog.Logger) *RecorderService {
	return &RecorderService{
		results: results,
		stats:   stats,
		retry:   retry,
		log:     log.With().Str("component", "recorder").Logger(),
	}
}

// SetRetryQueue attaches the queue failed writes are handed to.
func (s *RecorderService) SetRetryQueue(q RetryQueue) {
	s.retry = q
}

// Record appends res to the history and folds its score into the
// statistics. On failure the error is a *PersistError and the outstanding
// writes are queued for retry.
func (s *RecorderService) Record(ctx context.Context, res model.ExamResult) error {
	pw, err := s.Persist(ctx, model.PendingWrite{Stage: model.StageResult, Result: res})
	if err == nil {
		return nil
	}

	s.log.Error().Err(err).
		Str("result_id", res.ID).
		Str("stage", string(pw.Stage)).
		Msg("Failed to persist exam result")

	if s.retry != nil {
		s.retry.Enqueue(pw)
	}
	return err
}

// Persist runs the writes still outstanding for pw. On failure it returns
// pw advanced to the stage that failed, with the error recorded.
func (s *RecorderService) Persist(ctx context.Context, pw model.PendingWrite) (model.PendingWrite, error) {
	if pw.Stage == model.StageResult {
		if err := s.appendOnce(ctx, pw); err != nil {
			pw.LastErr = err.Error()
			return pw, &PersistError{Stage: model.StageResult, Err: err}
		}
		pw.Stage = model.StageStats
	}

	if err := s.applyStats(ctx, pw.Result.Score); err != nil {
		pw.LastErr = err.Error()
		return pw, &PersistError{Stage: model.StageStats, Err: err}
	}
	return pw, nil
}

// appendOnce skips the append when an earlier attempt already stored the
// result.
func (s *RecorderService) appendOnce(ctx context.Context, pw model.PendingWrite) error {
	if pw.Attempts > 0 {
		exists, err := s.results.HasResult(ctx, pw.Result.ID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}
	return s.results.AppendResult(ctx, pw.Result)
}

func (s *RecorderService) applyStats(ctx context.Context, score int) error {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	old, err := s.stats.Read(ctx)
	if err != nil {
		return err
	}
	return s.stats.Write(ctx, exam.NextStatistics(old, score))
}
