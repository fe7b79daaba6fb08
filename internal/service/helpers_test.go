package service_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/repository"
)

const waitFor = 2 * time.Second

var errDown = errors.New("storage down")

func quietLog() zerolog.Logger { return zerolog.New(io.Discard) }

type stores struct {
	kv        *repository.MemoryKV
	questions *repository.QuestionRepository
	results   *repository.ResultRepository
	stats     *repository.StatsRepository
}

func newStores() stores {
	kv := repository.NewMemoryKV()
	return stores{
		kv:        kv,
		questions: repository.NewQuestionRepository(kv, quietLog()),
		results:   repository.NewResultRepository(kv, quietLog()),
		stats:     repository.NewStatsRepository(kv, quietLog()),
	}
}

// failingResults fails every write while down is set.
type failingResults struct {
	*repository.ResultRepository
	mu   sync.Mutex
	down bool
}

func (f *failingResults) AppendResult(ctx context.Context, res model.ExamResult) error {
	f.mu.Lock()
	down := f.down
	f.mu.Unlock()
	if down {
		return errDown
	}
	return f.ResultRepository.AppendResult(ctx, res)
}

type failingStats struct {
	*repository.StatsRepository
}

func (failingStats) Write(context.Context, model.UserStatistics) error { return errDown }

type failingBank struct{}

func (failingBank) GetAllQuestions(context.Context) ([]model.Question, error) { return nil, errDown }
func (failingBank) AppendQuestion(context.Context, model.Question) error      { return errDown }

type recordingQueue struct {
	mu      sync.Mutex
	pending []model.PendingWrite
}

func (q *recordingQueue) Enqueue(pw model.PendingWrite) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, pw)
}

func (q *recordingQueue) items() []model.PendingWrite {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]model.PendingWrite(nil), q.pending...)
}

// ─── Manual countdown ──────────────────────────────────────────────────────

type manualTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               { m.once.Do(func() { close(m.stopped) }) }

type tickers struct {
	mu  sync.Mutex
	all []*manualTicker
}

func (f *tickers) factory(time.Duration) exam.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := &manualTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	f.all = append(f.all, m)
	return m
}

func (f *tickers) last(t *testing.T) *manualTicker {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.all) == 0 {
		t.Fatal("no ticker created")
	}
	return f.all[len(f.all)-1]
}

func (f *tickers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.all)
}

func (m *manualTicker) tick(t *testing.T) {
	t.Helper()
	select {
	case m.c <- time.Now():
	case <-time.After(waitFor):
		t.Fatal("countdown did not take the tick")
	}
}

func (m *manualTicker) waitStopped(t *testing.T) {
	t.Helper()
	select {
	case <-m.stopped:
	case <-time.After(waitFor):
		t.Fatal("countdown was not stopped")
	}
}

func nextEvent[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(waitFor):
		t.Fatal("no event received")
	}
	var zero T
	return zero
}
