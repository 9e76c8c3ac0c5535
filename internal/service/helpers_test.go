package service

import (
	"net/http"
	"net/http/httptest"
	"osu-dumper/internal/api"
	"osu-dumper/internal/config"
	"osu-dumper/internal/database"
	"osu-dumper/internal/db"
	"osu-dumper/internal/repository"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	users    *repository.UserRepository
	beatmaps *repository.BeatmapRepository
	combos   *repository.ModComboRepository
	scores   *repository.ScoreRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	sqlDB, err := database.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	return testRepos{
		users:    repository.NewUserRepository(q, zerolog.Nop()),
		beatmaps: repository.NewBeatmapRepository(q, zerolog.Nop()),
		combos:   repository.NewModComboRepository(q, zerolog.Nop()),
		scores:   repository.NewScoreRepository(q, zerolog.Nop()),
	}
}

// newTestClient serves the token endpoint itself and hands every other request to h.
func newTestClient(t *testing.T, h http.HandlerFunc) *api.OsuClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			w.Write([]byte(`{"access_token":"tok","expires_in":86400,"token_type":"Bearer"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	return api.NewOsuClient(&config.Config{
		OsuAPIURL:       srv.URL,
		OsuClientID:     "id",
		OsuClientSecret: "secret",
	})
}
