package ingest

import (
	"context"
	"fmt"
	"osu-dumper/internal/domain"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

type Config struct {
	PageSize       int
	StartOffset    int
	ReportInterval time.Duration
}

// Request describes one run. Listener and Gate are optional; without a
// listener progress goes to the log, without a gate the run cannot be cancelled.
type Request struct {
	User           domain.User
	RefreshRatings bool
	Listener       Listener
	Gate           *Gate
}

type Result struct {
	RunID         string `json:"run_id"`
	Outcome       State  `json:"-"`
	Pages         int    `json:"pages"`
	MapsSeen      int    `json:"maps_seen"`
	MapsScanned   int    `json:"maps_scanned"`
	ScoresSaved   int    `json:"scores_saved"`
	ScoresSkipped int    `json:"scores_skipped"`
	RatingFetches int    `json:"rating_fetches"`
	CacheHits     int    `json:"cache_hits"`
	Calls         int64  `json:"api_calls"`
}

// Pipeline runs ingestion. It does not serialize runs itself: the caller must
// not start a run while another one is running.
type Pipeline struct {
	src      Source
	sink     Sink
	throttle Throttler
	cfg      Config
	logger   zerolog.Logger

	calls CallCounter
	state atomic.Int32
}

func NewPipeline(src Source, sink Sink, throttle Throttler, cfg Config, logger zerolog.Logger) *Pipeline {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &Pipeline{
		src:      src,
		sink:     sink,
		throttle: throttle,
		cfg:      cfg,
		logger:   logger,
	}
}

// State is the state of the current or last run.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Calls exposes the external call counter of the current run.
func (p *Pipeline) Calls() *CallCounter {
	return &p.calls
}

// Run ingests every most played map of req.User. The returned error is non-nil
// only when the outcome is StateFailed.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	runID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}

	logger := p.logger.With().
		Str("run_id", runID).
		Int64("user_id", req.User.OsuID).
		Bool("refresh", req.RefreshRatings).
		Logger()
	notifier := NewNotifier(req.Listener, logger)

	p.state.Store(int32(StateRunning))
	p.calls.Reset()
	stopReporter := startReporter(&p.calls, p.cfg.ReportInterval, logger)

	result := &Result{RunID: runID}
	start := time.Now()
	logger.Info().Msg("ingestion started")
	notifier.Notify("Starting dumping")

	cancelled, err := p.run(ctx, req, notifier, result, logger)

	stopReporter()
	result.Calls = p.calls.Total()

	switch {
	case err != nil:
		result.Outcome = StateFailed
		logger.Error().Err(err).Msg("ingestion failed")
		notifier.Notify(fmt.Sprintf("Dumping failed: %v", err))
	case cancelled:
		result.Outcome = StateCancelled
		logger.Info().Msg("ingestion cancelled")
		notifier.Notify("Canceled dumping")
	default:
		result.Outcome = StateCompleted
		notifier.Notify(fmt.Sprintf("Completed dumping: %s scores saved across %s maps",
			humanize.Comma(int64(result.ScoresSaved)), humanize.Comma(int64(result.MapsSeen))))
	}
	p.state.Store(int32(result.Outcome))

	logger.Info().
		Stringer("outcome", result.Outcome).
		Int("pages", result.Pages).
		Int("maps_seen", result.MapsSeen).
		Int("maps_scanned", result.MapsScanned).
		Int("scores_saved", result.ScoresSaved).
		Int("scores_skipped", result.ScoresSkipped).
		Int("rating_fetches", result.RatingFetches).
		Int("cache_hits", result.CacheHits).
		Int64("api_calls", result.Calls).
		Dur("duration", time.Since(start)).
		Msg("ingestion finished")

	return result, err
}

func (p *Pipeline) run(ctx context.Context, req Request, notifier Notifier, result *Result, logger zerolog.Logger) (bool, error) {
	if err := p.sink.InsertUser(ctx, req.User); err != nil {
		return false, &PersistenceError{Op: fmt.Sprintf("insert user %d", req.User.OsuID), Err: err}
	}

	src := countingSource{src: p.src, calls: &p.calls}

	w := newWalker(src, p.throttle, req.Gate, req.User.OsuID, p.cfg.PageSize, p.cfg.StartOffset)
	w.onPage = func(fetched, offset int) {
		notifier.Notify(fmt.Sprintf("Retrieved %d maps (currently at %d maps)", fetched, offset))
	}

	r := &resolver{
		src:      src,
		sink:     p.sink,
		throttle: p.throttle,
		notifier: notifier,
		logger:   logger,
		userID:   req.User.OsuID,
		refresh:  req.RefreshRatings,
		result:   result,
	}

	for {
		page, ok, err := w.next(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		result.Pages++

		for _, entry := range page {
			if err := r.resolve(ctx, entry); err != nil {
				return false, err
			}
		}
	}

	if w.cancelled {
		logger.Info().Int("offset", w.offset).Msg("cancel requested, stopping before next page")
	}
	return w.cancelled, nil
}
