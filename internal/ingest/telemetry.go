package ingest

import (
	"context"
	"osu-dumper/internal/domain"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// CallCounter tallies external calls. It is observability only; nothing in
// the run reads it to make decisions.
type CallCounter struct {
	window atomic.Int64
	total  atomic.Int64
}

func (c *CallCounter) Inc() {
	c.window.Add(1)
	c.total.Add(1)
}

// Drain returns the calls since the previous drain and starts a new window.
func (c *CallCounter) Drain() int64 {
	return c.window.Swap(0)
}

func (c *CallCounter) Total() int64 {
	return c.total.Load()
}

func (c *CallCounter) Reset() {
	c.window.Store(0)
	c.total.Store(0)
}

// startReporter logs the call volume every interval until the returned stop
// func is called.
func startReporter(calls *CallCounter, interval time.Duration, logger zerolog.Logger) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())

	var g errgroup.Group
	g.Go(func() error {
		if interval <= 0 {
			<-ctx.Done()
			return nil
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				logger.Info().
					Int64("calls", calls.Drain()).
					Dur("interval", interval).
					Msg("external API calls in the past interval")
			}
		}
	})

	return func() {
		cancel()
		_ = g.Wait()
	}
}

type countingSource struct {
	src   Source
	calls *CallCounter
}

func (s countingSource) MostPlayed(ctx context.Context, userID int64, limit, offset int) ([]domain.MostPlayed, error) {
	s.calls.Inc()
	return s.src.MostPlayed(ctx, userID, limit, offset)
}

func (s countingSource) UserScoresOnMap(ctx context.Context, mapID, userID int64) ([]domain.PlayedScore, error) {
	s.calls.Inc()
	return s.src.UserScoresOnMap(ctx, mapID, userID)
}

func (s countingSource) DifficultyRating(ctx context.Context, mapID int64, mods []string) (float64, error) {
	s.calls.Inc()
	return s.src.DifficultyRating(ctx, mapID, mods)
}
