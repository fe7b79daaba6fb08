package exam

import (
	"context"
	"time"
)

// Ticker delivers countdown ticks. It lets the session be driven by a wall
// clock in production and by hand in tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

// NewRealTicker wraps time.Ticker.
func NewRealTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// Drive calls onTick for every tick until ctx is cancelled or onTick reports
// done. The ticker is always stopped on return.
func Drive(ctx context.Context, t Ticker, onTick func() (done bool)) {
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			if onTick() {
				return
			}
		}
	}
}
