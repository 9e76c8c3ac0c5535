package repository

import (
	"context"
	"database/sql"
	"errors"
	"osu-dumper/internal/db"
	"osu-dumper/internal/domain"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("not found")

type UserRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewUserRepository(queries *db.Queries, logger zerolog.Logger) *UserRepository {
	return &UserRepository{queries: queries, logger: logger}
}

func (r *UserRepository) Insert(ctx context.Context, user domain.User) error {
	return r.queries.InsertUser(ctx, db.InsertUserParams{
		OsuID:   user.OsuID,
		OsuName: user.Name,
	})
}

func (r *UserRepository) GetByOsuID(ctx context.Context, osuID int64) (*domain.User, error) {
	user, err := r.queries.GetUserByOsuID(ctx, osuID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.User{OsuID: user.OsuID, Name: user.OsuName}, nil
}
