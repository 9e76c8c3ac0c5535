package ingest

import (
	"context"
	"sync/atomic"
	"time"
)

// Throttler paces external calls. Wait is called after every call that hit
// the network.
type Throttler interface {
	Wait(ctx context.Context) error
}

// FixedInterval sleeps for the same interval after every call. The interval
// can be changed at any time and applies process wide.
type FixedInterval struct {
	interval atomic.Int64
}

func NewFixedInterval(interval time.Duration) *FixedInterval {
	t := &FixedInterval{}
	t.SetInterval(interval)
	return t
}

func (t *FixedInterval) SetInterval(interval time.Duration) {
	if interval < 0 {
		interval = 0
	}
	t.interval.Store(int64(interval))
}

func (t *FixedInterval) Interval() time.Duration {
	return time.Duration(t.interval.Load())
}

func (t *FixedInterval) Wait(ctx context.Context) error {
	interval := t.Interval()
	if interval == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
