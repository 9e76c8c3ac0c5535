package repository

import (
	"context"
	"database/sql"
	"errors"
	"osu-dumper/internal/db"
	"osu-dumper/internal/domain"

	"github.com/rs/zerolog"
)

// BeatmapRepository stores mapsets and their maps. Both are insert-if-absent:
// titles, artists and statuses are kept as first seen.
type BeatmapRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewBeatmapRepository(queries *db.Queries, logger zerolog.Logger) *BeatmapRepository {
	return &BeatmapRepository{queries: queries, logger: logger}
}

func (r *BeatmapRepository) InsertMapset(ctx context.Context, mapset domain.Mapset) error {
	return r.queries.InsertMapset(ctx, db.InsertMapsetParams{
		MapsetID: mapset.MapsetID,
		Name:     mapset.Title,
		Artist:   mapset.Artist,
	})
}

func (r *BeatmapRepository) InsertMap(ctx context.Context, m domain.Map) error {
	return r.queries.InsertMap(ctx, db.InsertMapParams{
		MapID:    m.MapID,
		MapsetID: m.MapsetID,
		Version:  m.Version,
		Status:   int64(m.Status),
	})
}

func (r *BeatmapRepository) GetMapset(ctx context.Context, mapsetID int64) (*domain.Mapset, error) {
	mapset, err := r.queries.GetMapset(ctx, mapsetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.Mapset{
		MapsetID: mapset.MapsetID,
		Title:    mapset.Name,
		Artist:   mapset.Artist,
	}, nil
}

func (r *BeatmapRepository) GetMap(ctx context.Context, mapID int64) (*domain.Map, error) {
	m, err := r.queries.GetMap(ctx, mapID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainMap(m), nil
}

func (r *BeatmapRepository) ListMaps(ctx context.Context) ([]domain.Map, error) {
	maps, err := r.queries.ListMaps(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Map, len(maps))
	for i, m := range maps {
		result[i] = *toDomainMap(m)
	}
	return result, nil
}

func toDomainMap(m db.Map) *domain.Map {
	return &domain.Map{
		MapID:    m.MapID,
		MapsetID: m.MapsetID,
		Status:   domain.RankStatus(m.Status),
		Version:  m.Version,
	}
}
