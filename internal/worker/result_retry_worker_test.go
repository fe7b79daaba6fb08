package worker_test

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
	"github.com/stemsi/gatemock-backend/internal/worker"
)

const waitFor = 2 * time.Second

type manualTicker struct {
	c chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               {}

type fakePersister struct {
	fail  bool
	calls chan model.PendingWrite
}

func (p *fakePersister) Persist(_ context.Context, pw model.PendingWrite) (model.PendingWrite, error) {
	p.calls <- pw
	if p.fail {
		pw.LastErr = "storage down"
		return pw, errors.New("storage down")
	}
	return pw, nil
}

type fakeStore struct {
	mu     sync.Mutex
	parked []model.PendingWrite
	saved  [][]model.PendingWrite
}

func (s *fakeStore) Load(context.Context) ([]model.PendingWrite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.PendingWrite(nil), s.parked...), nil
}

func (s *fakeStore) Save(_ context.Context, pending []model.PendingWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, append([]model.PendingWrite(nil), pending...))
	return nil
}

func (s *fakeStore) lastSaved(t *testing.T) []model.PendingWrite {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saved) == 0 {
		t.Fatal("nothing saved")
	}
	return s.saved[len(s.saved)-1]
}

func startWorker(t *testing.T, p *fakePersister, store *fakeStore) (*worker.ResultRetryWorker, *manualTicker, context.CancelFunc) {
	t.Helper()
	ticker := &manualTicker{c: make(chan time.Time)}
	w := worker.NewResultRetryWorker(p, store, time.Second, zerolog.New(io.Discard),
		worker.WithTickerFactory(func(time.Duration) exam.Ticker { return ticker }))

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)
	return w, ticker, cancel
}

func tick(t *testing.T, m *manualTicker) {
	t.Helper()
	select {
	case m.c <- time.Now():
	case <-time.After(waitFor):
		t.Fatal("worker did not take the tick")
	}
}

func waitCall(t *testing.T, p *fakePersister) model.PendingWrite {
	t.Helper()
	select {
	case pw := <-p.calls:
		return pw
	case <-time.After(waitFor):
		t.Fatal("persister was not called")
	}
	return model.PendingWrite{}
}

func stop(t *testing.T, w *worker.ResultRetryWorker, cancel context.CancelFunc) {
	t.Helper()
	cancel()
	select {
	case <-w.Done():
	case <-time.After(waitFor):
		t.Fatal("worker did not stop")
	}
}

func TestResultRetryWorker_ResumesParkedWrites(t *testing.T) {
	store := &fakeStore{parked: []model.PendingWrite{{
		Stage:  model.StageStats,
		Result: model.ExamResult{ID: "r1", Score: 70},
	}}}
	p := &fakePersister{calls: make(chan model.PendingWrite, 4)}

	w, ticker, cancel := startWorker(t, p, store)
	tick(t, ticker)

	pw := waitCall(t, p)
	if pw.Result.ID != "r1" || pw.Stage != model.StageStats {
		t.Errorf("persisted %+v", pw)
	}
	if pw.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", pw.Attempts)
	}

	stop(t, w, cancel)
	if got := store.lastSaved(t); len(got) != 0 {
		t.Errorf("parked after success = %+v, want none", got)
	}
}

func TestResultRetryWorker_KeepsFailingWrites(t *testing.T) {
	store := &fakeStore{}
	p := &fakePersister{fail: true, calls: make(chan model.PendingWrite, 4)}

	w, ticker, cancel := startWorker(t, p, store)
	w.Enqueue(model.PendingWrite{Stage: model.StageResult, Result: model.ExamResult{ID: "r2"}})
	tick(t, ticker)
	waitCall(t, p)

	stop(t, w, cancel)
	got := store.lastSaved(t)
	if len(got) != 1 {
		t.Fatalf("parked = %+v, want one entry", got)
	}
	if got[0].Attempts != 1 || got[0].LastErr != "storage down" || got[0].Stage != model.StageResult {
		t.Errorf("parked entry = %+v", got[0])
	}
}

func TestResultRetryWorker_ParksQueueOnShutdown(t *testing.T) {
	store := &fakeStore{}
	p := &fakePersister{calls: make(chan model.PendingWrite, 4)}

	w, _, cancel := startWorker(t, p, store)
	w.Enqueue(model.PendingWrite{Stage: model.StageResult, Result: model.ExamResult{ID: "r3"}})
	stop(t, w, cancel)

	got := store.lastSaved(t)
	if len(got) != 1 || got[0].Result.ID != "r3" || got[0].Attempts != 0 {
		t.Errorf("parked = %+v", got)
	}
	select {
	case pw := <-p.calls:
		t.Errorf("unexpected persist of %+v on shutdown", pw)
	default:
	}
}
