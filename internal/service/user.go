package service

import (
	"context"
	"errors"
	"fmt"
	"osu-dumper/internal/api"
	"osu-dumper/internal/constants"
	"osu-dumper/internal/domain"
	"osu-dumper/internal/repository"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

var ErrNoUser = errors.New("user not initialized")

type userLookup interface {
	GetUser(ctx context.Context, ident string, byID bool) (*api.UserResponse, error)
}

// UserService tracks the user that ingestion runs are performed for.
type UserService struct {
	osu    userLookup
	repo   *repository.UserRepository
	logger zerolog.Logger

	mu      sync.RWMutex
	current *domain.User
}

func NewUserService(osu *api.OsuClient, repo *repository.UserRepository, logger zerolog.Logger) *UserService {
	return newUserService(osu, repo, logger)
}

func newUserService(osu userLookup, repo *repository.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{osu: osu, repo: repo, logger: logger}
}

func (s *UserService) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}

// SetUser looks ident up as a username first and as a numeric id second, stores
// the user and makes it the current one.
func (s *UserService) SetUser(ctx context.Context, ident string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	resp, err := s.osu.GetUser(ctx, ident, false)
	if err != nil {
		if !api.IsNumeric(ident) {
			s.logger.Warn().Err(err).Str("user", ident).Msg("user lookup failed")
			return nil, fmt.Errorf("no user found: %w", err)
		}
		s.logger.Debug().Err(err).Str("user", ident).Msg("username lookup failed, trying as id")
		resp, err = s.osu.GetUser(ctx, ident, true)
		if err != nil {
			s.logger.Warn().Err(err).Str("user", ident).Msg("user lookup by id failed")
			return nil, fmt.Errorf("no user found: %w", err)
		}
	}

	user := domain.User{OsuID: resp.ID, Name: resp.Username}
	if err := s.remember(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.OsuID).Str("username", user.Name).Msg("user set")
	return &user, nil
}

// LoadConfigured restores the configured user from the store, or from the API
// when it was never stored.
func (s *UserService) LoadConfigured(ctx context.Context, osuID int64) error {
	if osuID == 0 {
		return nil
	}

	user, err := s.repo.GetByOsuID(ctx, osuID)
	if err == nil {
		s.set(*user)
		s.logger.Info().Int64("user_id", user.OsuID).Str("username", user.Name).Msg("configured user loaded")
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to load user %d: %w", osuID, err)
	}

	_, err = s.SetUser(ctx, strconv.FormatInt(osuID, 10))
	return err
}

func (s *UserService) remember(ctx context.Context, user domain.User) error {
	if err := s.repo.Insert(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.OsuID).Msg("failed to insert user")
		return fmt.Errorf("failed to insert user: %w", err)
	}
	s.set(user)
	return nil
}

func (s *UserService) set(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &user
}
