// Package ingest walks a user's most played maps on the scoring service and
// stores their scores together with the star rating of every mod combo used.
package ingest

import (
	"context"
	"osu-dumper/internal/domain"
)

// Source is the external scoring service. Every call is treated as fatal on error.
type Source interface {
	MostPlayed(ctx context.Context, userID int64, limit, offset int) ([]domain.MostPlayed, error)
	UserScoresOnMap(ctx context.Context, mapID, userID int64) ([]domain.PlayedScore, error)
	DifficultyRating(ctx context.Context, mapID int64, mods []string) (float64, error)
}

// Sink is the only writer of durable state. All writes are idempotent.
type Sink interface {
	InsertUser(ctx context.Context, user domain.User) error
	InsertMapset(ctx context.Context, mapset domain.Mapset) error
	InsertMap(ctx context.Context, m domain.Map) error
	RatingsForMap(ctx context.Context, mapID int64) ([]domain.RatedModCombo, error)
	InsertRating(ctx context.Context, combo domain.RatedModCombo) error
	UpsertRating(ctx context.Context, combo domain.RatedModCombo) error
	InsertScore(ctx context.Context, score domain.Score) error
}
