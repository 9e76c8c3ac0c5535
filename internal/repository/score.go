package repository

import (
	"context"
	"database/sql"
	"errors"
	"osu-dumper/internal/db"
	"osu-dumper/internal/domain"

	"github.com/rs/zerolog"
)

type ScoreRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewScoreRepository(queries *db.Queries, logger zerolog.Logger) *ScoreRepository {
	return &ScoreRepository{queries: queries, logger: logger}
}

// Insert is a no-op for a score id that is already stored.
func (r *ScoreRepository) Insert(ctx context.Context, score domain.Score) error {
	var lazer int64
	if score.Lazer {
		lazer = 1
	}
	return r.queries.InsertScore(ctx, db.InsertScoreParams{
		ScoreID:  score.ScoreID,
		UserID:   score.UserID,
		MapID:    score.MapID,
		ModCombo: score.ModCombo,
		Lazer:    lazer,
		Score:    score.Value,
		Accuracy: score.Accuracy,
	})
}

func (r *ScoreRepository) Get(ctx context.Context, scoreID int64) (*domain.Score, error) {
	s, err := r.queries.GetScore(ctx, scoreID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.Score{
		ScoreID:  s.ScoreID,
		UserID:   s.UserID,
		MapID:    s.MapID,
		ModCombo: s.ModCombo,
		Lazer:    s.Lazer == 1,
		Value:    s.Score,
		Accuracy: s.Accuracy,
	}, nil
}

func (r *ScoreRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return r.queries.CountScoresByUser(ctx, userID)
}
