package service

import (
	"context"
	"errors"
	"osu-dumper/internal/ingest"
	"sync"

	"github.com/rs/zerolog"
)

var ErrBusy = errors.New("an ingestion run is already in progress")

// DumpService serializes ingestion runs for the current user.
type DumpService struct {
	pipeline *ingest.Pipeline
	users    *UserService
	logger   zerolog.Logger

	mu sync.Mutex
}

func NewDumpService(pipeline *ingest.Pipeline, users *UserService, logger zerolog.Logger) *DumpService {
	return &DumpService{pipeline: pipeline, users: users, logger: logger}
}

// Dump runs ingestion for the current user. listener and gate may be nil.
func (s *DumpService) Dump(ctx context.Context, refresh bool, listener ingest.Listener, gate *ingest.Gate) (*ingest.Result, error) {
	user, ok := s.users.Current()
	if !ok {
		return nil, ErrNoUser
	}

	if !s.mu.TryLock() {
		s.logger.Warn().Int64("user_id", user.OsuID).Msg("rejecting run, another one is in progress")
		return nil, ErrBusy
	}
	defer s.mu.Unlock()

	return s.pipeline.Run(ctx, ingest.Request{
		User:           user,
		RefreshRatings: refresh,
		Listener:       listener,
		Gate:           gate,
	})
}

func (s *DumpService) State() ingest.State {
	return s.pipeline.State()
}
