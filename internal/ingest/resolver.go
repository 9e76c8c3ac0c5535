package ingest

import (
	"context"
	"errors"
	"fmt"
	"osu-dumper/internal/domain"

	"github.com/rs/zerolog"
)

type resolver struct {
	src      Source
	sink     Sink
	throttle Throttler
	notifier Notifier
	logger   zerolog.Logger

	userID  int64
	refresh bool

	result *Result
}

// resolve stores one most played entry and, for maps with a leaderboard, every
// score the user has on it.
func (r *resolver) resolve(ctx context.Context, entry domain.MostPlayed) error {
	if err := r.sink.InsertMapset(ctx, entry.Mapset); err != nil {
		return &PersistenceError{Op: fmt.Sprintf("insert mapset %d", entry.Mapset.MapsetID), Err: err}
	}

	m := entry.Map
	m.MapsetID = entry.Mapset.MapsetID
	if err := r.sink.InsertMap(ctx, m); err != nil {
		return &PersistenceError{Op: fmt.Sprintf("insert map %d", m.MapID), Err: err}
	}
	r.result.MapsSeen++

	if !m.Status.HasLeaderboard() {
		r.logger.Debug().Int64("map_id", m.MapID).Stringer("status", m.Status).Msg("skipping map without leaderboard")
		return nil
	}

	r.notifier.Notify(fmt.Sprintf("Scanning %s - %s [%s] for scores", entry.Mapset.Artist, entry.Mapset.Title, m.Version))

	scores, err := r.src.UserScoresOnMap(ctx, m.MapID, r.userID)
	if err != nil {
		return &ExternalSourceError{Op: fmt.Sprintf("fetch scores on map %d", m.MapID), Err: err}
	}
	if err := r.throttle.Wait(ctx); err != nil {
		return err
	}
	r.result.MapsScanned++

	r.notifier.Notify(fmt.Sprintf("Got %d scores", len(scores)))

	cache := newRatingCache(m.MapID)
	if !r.refresh {
		stored, err := r.sink.RatingsForMap(ctx, m.MapID)
		if err != nil {
			return &PersistenceError{Op: fmt.Sprintf("load ratings for map %d", m.MapID), Err: err}
		}
		cache.seed(stored)
	}

	scanned := 0
	for _, played := range scores {
		saved, err := r.resolveScore(ctx, m.MapID, played, cache)
		if err != nil {
			return err
		}
		if !saved {
			continue
		}
		scanned++
		r.notifier.Notify(fmt.Sprintf("Scanned %d/%d scores", scanned, len(scores)))
	}

	r.logger.Debug().
		Int64("map_id", m.MapID).
		Int("scores", len(scores)).
		Int("saved", scanned).
		Int("combos", cache.len()).
		Msg("map scanned")
	return nil
}

func (r *resolver) resolveScore(ctx context.Context, mapID int64, played domain.PlayedScore, cache *ratingCache) (bool, error) {
	combo, err := CanonicalCombo(played.Mods)
	if errors.Is(err, ErrMalformedScore) {
		r.result.ScoresSkipped++
		r.logger.Debug().Int64("score_id", played.ScoreID).Int64("map_id", mapID).Msg("skipping score with mod settings")
		return false, nil
	}

	rating, ok := cache.get(combo)
	if ok {
		r.result.CacheHits++
	} else {
		rating, err = r.src.DifficultyRating(ctx, mapID, played.Acronyms())
		if err != nil {
			return false, &ExternalSourceError{Op: fmt.Sprintf("fetch rating for map %d +%s", mapID, combo), Err: err}
		}
		r.result.RatingFetches++
		cache.put(combo, rating)
		if err := r.throttle.Wait(ctx); err != nil {
			return false, err
		}
	}

	rated := domain.RatedModCombo{MapID: mapID, ModCombo: combo, StarRating: rating}
	if r.refresh {
		err = r.sink.UpsertRating(ctx, rated)
	} else {
		err = r.sink.InsertRating(ctx, rated)
	}
	if err != nil {
		return false, &PersistenceError{Op: fmt.Sprintf("save rating for map %d +%s", mapID, combo), Err: err}
	}

	score := domain.Score{
		ScoreID:  played.ScoreID,
		UserID:   r.userID,
		MapID:    mapID,
		ModCombo: combo,
		Lazer:    played.Lazer,
		Value:    played.TotalScore,
		Accuracy: played.Accuracy,
	}
	if err := r.sink.InsertScore(ctx, score); err != nil {
		return false, &PersistenceError{Op: fmt.Sprintf("insert score %d", played.ScoreID), Err: err}
	}
	r.result.ScoresSaved++
	return true, nil
}
