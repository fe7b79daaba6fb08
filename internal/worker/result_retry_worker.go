package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/model"
)

const (
	RetryQueueSize     = 256
	RetryParkTimeout   = 5 * time.Second
	DefaultRetryPeriod = 15 * time.Second
)

// Persister runs the outstanding writes of a pending result.
type Persister interface {
	Persist(ctx context.Context, pw model.PendingWrite) (model.PendingWrite, error)
}

// PendingStore parks pending writes across restarts.
type PendingStore interface {
	Load(ctx context.Context) ([]model.PendingWrite, error)
	Save(ctx context.Context, pending []model.PendingWrite) error
}

// ResultRetryWorker re-drives result writes that failed when an exam was
// scored. Pending writes are retried every interval and parked in the store
// on shutdown.
type ResultRetryWorker struct {
	persister Persister
	store     PendingStore
	interval  time.Duration
	newTicker exam.TickerFactory
	queue     chan model.PendingWrite
	done      chan struct{}
	log       zerolog.Logger
}

// Option configures a ResultRetryWorker.
type Option func(*ResultRetryWorker)

// WithTickerFactory replaces the retry ticker.
func WithTickerFactory(f exam.TickerFactory) Option {
	return func(w *ResultRetryWorker) { w.newTicker = f }
}

func NewResultRetryWorker(persister Persister, store PendingStore, interval time.Duration, log zerolog.Logger, opts ...Option) *ResultRetryWorker {
	if interval <= 0 {
		interval = DefaultRetryPeriod
	}
	w := &ResultRetryWorker{
		persister: persister,
		store:     store,
		interval:  interval,
		newTicker: exam.NewRealTicker,
		queue:     make(chan model.PendingWrite, RetryQueueSize),
		done:      make(chan struct{}),
		log:       log.With().Str("component", "result_retry_worker").Logger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Enqueue hands pw to the worker without blocking.
func (w *ResultRetryWorker) Enqueue(pw model.PendingWrite) {
	select {
	case w.queue <- pw:
	default:
		w.log.Error().Str("result_id", pw.Result.ID).Msg("Retry queue full, dropping pending write")
	}
}

// Done is closed once Start has returned.
func (w *ResultRetryWorker) Done() <-chan struct{} {
	return w.done
}

// ----------------------------------------------------------------
// Worker loop
// ----------------------------------------------------------------

func (w *ResultRetryWorker) Start(ctx context.Context) {
	defer close(w.done)
	w.log.Info().Dur("interval", w.interval).Msg("ResultRetryWorker started")

	batch := w.loadParked(ctx)

	t := w.newTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			batch = w.drain(batch)
			w.log.Info().Int("pending", len(batch)).Msg("Shutdown requested. Parking pending writes...")
			parkCtx, cancel := context.WithTimeout(context.Background(), RetryParkTimeout)
			w.park(parkCtx, batch)
			cancel()
			return

		case pw := <-w.queue:
			batch = append(batch, pw)

		case <-t.C():
			batch = w.drain(batch)
			if len(batch) == 0 {
				continue
			}
			batch = w.flushSafe(ctx, batch)
			w.park(ctx, batch)
		}
	}
}

func (w *ResultRetryWorker) drain(batch []model.PendingWrite) []model.PendingWrite {
	for {
		select {
		case pw := <-w.queue:
			batch = append(batch, pw)
		default:
			return batch
		}
	}
}

// ----------------------------------------------------------------
// Retry pass
// ----------------------------------------------------------------

// flushSafe retries every pending write and returns the ones still failing.
func (w *ResultRetryWorker) flushSafe(ctx context.Context, batch []model.PendingWrite) []model.PendingWrite {
	remaining := batch[:0]
	for _, pw := range batch {
		pw.Attempts++
		next, err := w.persister.Persist(ctx, pw)
		if err != nil {
			w.log.Warn().Err(err).
				Str("result_id", pw.Result.ID).
				Str("stage", string(next.Stage)).
				Int("attempts", next.Attempts).
				Msg("Retry failed, keeping pending write")
			remaining = append(remaining, next)
			continue
		}
		w.log.Info().Str("result_id", pw.Result.ID).Int("attempts", pw.Attempts).Msg("Pending write persisted")
	}
	return remaining
}

// ----------------------------------------------------------------
// Parking
// ----------------------------------------------------------------

func (w *ResultRetryWorker) loadParked(ctx context.Context) []model.PendingWrite {
	parked, err := w.store.Load(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to load parked writes")
		return nil
	}
	if len(parked) > 0 {
		w.log.Info().Int("count", len(parked)).Msg("Resuming parked writes")
	}
	return parked
}

func (w *ResultRetryWorker) park(ctx context.Context, batch []model.PendingWrite) {
	if err := w.store.Save(ctx, batch); err != nil {
		w.log.Error().Err(err).Int("pending", len(batch)).Msg("Failed to park pending writes")
	}
}
