package ingest

import (
	"context"
	"errors"
	"fmt"
	"osu-dumper/internal/domain"
	"sort"
	"sync"
)

type mostPlayedCall struct {
	limit  int
	offset int
}

type ratingCall struct {
	mapID int64
	combo string
}

// fakeSource serves pages in order and records every call.
type fakeSource struct {
	pages   [][]domain.MostPlayed
	scores  map[int64][]domain.PlayedScore
	ratings map[ratingCall]float64

	mostPlayedCalls []mostPlayedCall
	scoreCalls      []int64
	ratingCalls     []ratingCall

	mostPlayedErr error
	scoresErr     error
	ratingErr     error

	onScores func(mapID int64)
}

func (s *fakeSource) MostPlayed(_ context.Context, _ int64, limit, offset int) ([]domain.MostPlayed, error) {
	s.mostPlayedCalls = append(s.mostPlayedCalls, mostPlayedCall{limit: limit, offset: offset})
	if s.mostPlayedErr != nil {
		return nil, s.mostPlayedErr
	}
	i := len(s.mostPlayedCalls) - 1
	if i >= len(s.pages) {
		return []domain.MostPlayed{}, nil
	}
	return s.pages[i], nil
}

func (s *fakeSource) UserScoresOnMap(_ context.Context, mapID, _ int64) ([]domain.PlayedScore, error) {
	s.scoreCalls = append(s.scoreCalls, mapID)
	if s.onScores != nil {
		s.onScores(mapID)
	}
	if s.scoresErr != nil {
		return nil, s.scoresErr
	}
	return s.scores[mapID], nil
}

func (s *fakeSource) DifficultyRating(_ context.Context, mapID int64, mods []string) (float64, error) {
	call := ratingCall{mapID: mapID, combo: domain.JoinAcronyms(mods)}
	s.ratingCalls = append(s.ratingCalls, call)
	if s.ratingErr != nil {
		return 0, s.ratingErr
	}
	if r, ok := s.ratings[call]; ok {
		return r, nil
	}
	return 5.0, nil
}

// memSink mimics the SQLite store: insert-if-absent everywhere but UpsertRating.
type memSink struct {
	users   map[int64]domain.User
	mapsets map[int64]domain.Mapset
	maps    map[int64]domain.Map
	ratings map[ratingCall]float64
	scores  map[int64]domain.Score

	ratingsForMapCalls int
	failOn             string
}

func newMemSink() *memSink {
	return &memSink{
		users:   make(map[int64]domain.User),
		mapsets: make(map[int64]domain.Mapset),
		maps:    make(map[int64]domain.Map),
		ratings: make(map[ratingCall]float64),
		scores:  make(map[int64]domain.Score),
	}
}

var errSinkDown = errors.New("disk on fire")

func (s *memSink) fail(op string) error {
	if s.failOn == op {
		return errSinkDown
	}
	return nil
}

func (s *memSink) InsertUser(_ context.Context, user domain.User) error {
	if err := s.fail("user"); err != nil {
		return err
	}
	if _, ok := s.users[user.OsuID]; !ok {
		s.users[user.OsuID] = user
	}
	return nil
}

func (s *memSink) InsertMapset(_ context.Context, mapset domain.Mapset) error {
	if err := s.fail("mapset"); err != nil {
		return err
	}
	if _, ok := s.mapsets[mapset.MapsetID]; !ok {
		s.mapsets[mapset.MapsetID] = mapset
	}
	return nil
}

func (s *memSink) InsertMap(_ context.Context, m domain.Map) error {
	if err := s.fail("map"); err != nil {
		return err
	}
	if _, ok := s.mapsets[m.MapsetID]; !ok {
		return fmt.Errorf("foreign key: mapset %d missing", m.MapsetID)
	}
	if _, ok := s.maps[m.MapID]; !ok {
		s.maps[m.MapID] = m
	}
	return nil
}

func (s *memSink) RatingsForMap(_ context.Context, mapID int64) ([]domain.RatedModCombo, error) {
	s.ratingsForMapCalls++
	if err := s.fail("ratings"); err != nil {
		return nil, err
	}
	var out []domain.RatedModCombo
	for k, v := range s.ratings {
		if k.mapID == mapID {
			out = append(out, domain.RatedModCombo{MapID: k.mapID, ModCombo: k.combo, StarRating: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModCombo < out[j].ModCombo })
	return out, nil
}

func (s *memSink) InsertRating(_ context.Context, combo domain.RatedModCombo) error {
	if err := s.fail("rating"); err != nil {
		return err
	}
	if _, ok := s.maps[combo.MapID]; !ok {
		return fmt.Errorf("foreign key: map %d missing", combo.MapID)
	}
	key := ratingCall{mapID: combo.MapID, combo: combo.ModCombo}
	if _, ok := s.ratings[key]; !ok {
		s.ratings[key] = combo.StarRating
	}
	return nil
}

func (s *memSink) UpsertRating(_ context.Context, combo domain.RatedModCombo) error {
	if err := s.fail("rating"); err != nil {
		return err
	}
	if _, ok := s.maps[combo.MapID]; !ok {
		return fmt.Errorf("foreign key: map %d missing", combo.MapID)
	}
	s.ratings[ratingCall{mapID: combo.MapID, combo: combo.ModCombo}] = combo.StarRating
	return nil
}

func (s *memSink) InsertScore(_ context.Context, score domain.Score) error {
	if err := s.fail("score"); err != nil {
		return err
	}
	if _, ok := s.ratings[ratingCall{mapID: score.MapID, combo: score.ModCombo}]; !ok {
		return fmt.Errorf("foreign key: combo %d/%q missing", score.MapID, score.ModCombo)
	}
	if _, ok := s.users[score.UserID]; !ok {
		return fmt.Errorf("foreign key: user %d missing", score.UserID)
	}
	if _, ok := s.scores[score.ScoreID]; !ok {
		s.scores[score.ScoreID] = score
	}
	return nil
}

type countingThrottle struct {
	waits int
}

func (t *countingThrottle) Wait(ctx context.Context) error {
	t.waits++
	return ctx.Err()
}

// recordingListener collects progress messages.
type recordingListener struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (l *recordingListener) Send(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.messages = append(l.messages, text)
	return nil
}

func (l *recordingListener) last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.messages) == 0 {
		return ""
	}
	return l.messages[len(l.messages)-1]
}

func entry(mapsetID, mapID int64, status domain.RankStatus) domain.MostPlayed {
	return domain.MostPlayed{
		Mapset: domain.Mapset{MapsetID: mapsetID, Title: "Song", Artist: "Artist"},
		Map:    domain.Map{MapID: mapID, MapsetID: mapsetID, Status: status, Version: "Normal"},
	}
}

func played(id int64, acronyms ...string) domain.PlayedScore {
	mods := make([]domain.Mod, len(acronyms))
	for i, a := range acronyms {
		mods[i] = domain.Mod{Acronym: a}
	}
	return domain.PlayedScore{ScoreID: id, Accuracy: 0.98, TotalScore: 1_000_000, Mods: mods}
}
