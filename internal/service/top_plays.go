package service

import (
	"context"
	"fmt"
	"osu-dumper/internal/api"
	"osu-dumper/internal/constants"
	"osu-dumper/internal/ingest"
	"strings"

	"github.com/rs/zerolog"
)

type topPlaysAPI interface {
	userLookup
	GetUserBestScores(ctx context.Context, userID int64, limit int) ([]api.Score, error)
	GetBeatmapAttributesForMods(ctx context.Context, mapID int64, mods []api.Mod) (*api.DifficultyAttributes, error)
}

type TopPlaysService struct {
	osu      topPlaysAPI
	users    *UserService
	throttle ingest.Throttler
	logger   zerolog.Logger
}

func NewTopPlaysService(osu *api.OsuClient, users *UserService, throttle ingest.Throttler, logger zerolog.Logger) *TopPlaysService {
	return &TopPlaysService{osu: osu, users: users, throttle: throttle, logger: logger}
}

// TopPlays formats the best stable scores of username, or of the current user
// when username is empty. Scores whose rating cannot be fetched are left out.
func (s *TopPlaysService) TopPlays(ctx context.Context, username string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var userID int64
	if username != "" {
		user, err := s.osu.GetUser(ctx, username, false)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch user: %w", err)
		}
		userID = user.ID
	} else if current, ok := s.users.Current(); ok {
		userID = current.OsuID
	} else {
		return nil, ErrNoUser
	}

	scores, err := s.osu.GetUserBestScores(ctx, userID, constants.TopPlaysLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch best scores: %w", err)
	}

	plays := make([]string, 0, len(scores))
	for _, score := range scores {
		if score.Beatmap == nil || score.Beatmapset == nil {
			continue
		}
		if err := s.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		acronyms := make([]string, len(score.Mods))
		for i, m := range score.Mods {
			acronyms[i] = m.Acronym
		}

		attrs, err := s.osu.GetBeatmapAttributesForMods(ctx, score.Beatmap.ID, score.Mods)
		if err != nil {
			s.logger.Warn().Err(err).Int64("map_id", score.Beatmap.ID).Msg("failed to fetch difficulty attributes")
			continue
		}

		plays = append(plays, fmt.Sprintf("%s - %s [%s] +%s (%.2f*)",
			score.Beatmapset.Artist,
			score.Beatmapset.Title,
			score.Beatmap.Version,
			strings.Join(acronyms, ""),
			attrs.StarRating,
		))
	}
	return plays, nil
}
