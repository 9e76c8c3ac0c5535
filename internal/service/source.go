package service

import (
	"context"
	"fmt"
	"osu-dumper/internal/api"
	"osu-dumper/internal/constants"
	"osu-dumper/internal/domain"
	"osu-dumper/internal/ingest"
)

// OsuSource adapts the osu! API client to the ingestion source.
type OsuSource struct {
	osu *api.OsuClient
}

func NewOsuSource(osu *api.OsuClient) ingest.Source {
	return &OsuSource{osu: osu}
}

func (s *OsuSource) MostPlayed(ctx context.Context, userID int64, limit, offset int) ([]domain.MostPlayed, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	items, err := s.osu.GetUserMostPlayed(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch most played: %w", err)
	}

	entries := make([]domain.MostPlayed, len(items))
	for i, item := range items {
		status, err := domain.ParseRankStatus(item.Beatmap.Status)
		if err != nil {
			return nil, fmt.Errorf("map %d: %w", item.BeatmapID, err)
		}
		entries[i] = domain.MostPlayed{
			Mapset: domain.Mapset{
				MapsetID: item.Beatmapset.ID,
				Title:    item.Beatmapset.Title,
				Artist:   item.Beatmapset.Artist,
			},
			Map: domain.Map{
				MapID:    item.BeatmapID,
				MapsetID: item.Beatmapset.ID,
				Status:   status,
				Version:  item.Beatmap.Version,
			},
		}
	}
	return entries, nil
}

func (s *OsuSource) UserScoresOnMap(ctx context.Context, mapID, userID int64) ([]domain.PlayedScore, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	scores, err := s.osu.GetBeatmapUserScores(ctx, mapID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}

	result := make([]domain.PlayedScore, len(scores))
	for i, score := range scores {
		result[i] = toPlayedScore(score)
	}
	return result, nil
}

func (s *OsuSource) DifficultyRating(ctx context.Context, mapID int64, mods []string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	attrs, err := s.osu.GetBeatmapAttributes(ctx, mapID, mods)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch difficulty attributes: %w", err)
	}
	return attrs.StarRating, nil
}

func toPlayedScore(score api.Score) domain.PlayedScore {
	mods := make([]domain.Mod, len(score.Mods))
	for i, m := range score.Mods {
		mods[i] = domain.Mod{Acronym: m.Acronym, HasSettings: m.HasSettings()}
	}
	return domain.PlayedScore{
		ScoreID:    score.ID,
		Accuracy:   score.Accuracy,
		TotalScore: score.TotalScore,
		Mods:       mods,
		Lazer:      score.Lazer(),
	}
}
