package repository

import (
	"context"
	"osu-dumper/internal/db"
	"osu-dumper/internal/domain"

	"github.com/rs/zerolog"
)

type ModComboRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewModComboRepository(queries *db.Queries, logger zerolog.Logger) *ModComboRepository {
	return &ModComboRepository{queries: queries, logger: logger}
}

// Insert keeps an existing rating untouched.
func (r *ModComboRepository) Insert(ctx context.Context, combo domain.RatedModCombo) error {
	return r.queries.InsertModCombo(ctx, db.InsertModComboParams{
		MapID:      combo.MapID,
		ModCombo:   combo.ModCombo,
		StarRating: combo.StarRating,
	})
}

// Upsert overwrites an existing rating.
func (r *ModComboRepository) Upsert(ctx context.Context, combo domain.RatedModCombo) error {
	return r.queries.UpsertModCombo(ctx, db.UpsertModComboParams{
		MapID:      combo.MapID,
		ModCombo:   combo.ModCombo,
		StarRating: combo.StarRating,
	})
}

func (r *ModComboRepository) ListForMap(ctx context.Context, mapID int64) ([]domain.RatedModCombo, error) {
	combos, err := r.queries.GetModCombosForMap(ctx, mapID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RatedModCombo, len(combos))
	for i, c := range combos {
		result[i] = domain.RatedModCombo{
			MapID:      c.MapID,
			ModCombo:   c.ModCombo,
			StarRating: c.StarRating,
		}
	}
	return result, nil
}
