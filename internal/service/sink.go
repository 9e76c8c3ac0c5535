package service

import (
	"context"
	"osu-dumper/internal/domain"
	"osu-dumper/internal/ingest"
	"osu-dumper/internal/repository"
)

// RepositorySink writes ingestion results through the SQLite repositories.
type RepositorySink struct {
	users    *repository.UserRepository
	beatmaps *repository.BeatmapRepository
	combos   *repository.ModComboRepository
	scores   *repository.ScoreRepository
}

func NewRepositorySink(
	users *repository.UserRepository,
	beatmaps *repository.BeatmapRepository,
	combos *repository.ModComboRepository,
	scores *repository.ScoreRepository,
) ingest.Sink {
	return &RepositorySink{users: users, beatmaps: beatmaps, combos: combos, scores: scores}
}

func (s *RepositorySink) InsertUser(ctx context.Context, user domain.User) error {
	return s.users.Insert(ctx, user)
}

func (s *RepositorySink) InsertMapset(ctx context.Context, mapset domain.Mapset) error {
	return s.beatmaps.InsertMapset(ctx, mapset)
}

func (s *RepositorySink) InsertMap(ctx context.Context, m domain.Map) error {
	return s.beatmaps.InsertMap(ctx, m)
}

func (s *RepositorySink) RatingsForMap(ctx context.Context, mapID int64) ([]domain.RatedModCombo, error) {
	return s.combos.ListForMap(ctx, mapID)
}

func (s *RepositorySink) InsertRating(ctx context.Context, combo domain.RatedModCombo) error {
	return s.combos.Insert(ctx, combo)
}

func (s *RepositorySink) UpsertRating(ctx context.Context, combo domain.RatedModCombo) error {
	return s.combos.Upsert(ctx, combo)
}

func (s *RepositorySink) InsertScore(ctx context.Context, score domain.Score) error {
	return s.scores.Insert(ctx, score)
}
