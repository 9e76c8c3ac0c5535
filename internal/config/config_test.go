package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OSU_CLIENT_ID", "123")
	t.Setenv("OSU_CLIENT_SECRET", "secret")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "https://osu.ppy.sh", cfg.OsuAPIURL)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "database.db", cfg.DBPath)
	assert.Equal(t, "3001", cfg.ServerPort)
	assert.Equal(t, 100*time.Millisecond, cfg.APIDelay)
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, time.Minute, cfg.ReportInterval)
	assert.Zero(t, cfg.OsuUserID)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OSU_CLIENT_ID", "123")
	t.Setenv("OSU_CLIENT_SECRET", "secret")
	t.Setenv("OSU_USER_ID", "4242")
	t.Setenv("API_DELAY_MS", "250")
	t.Setenv("PAGE_SIZE", "50")
	t.Setenv("REPORT_INTERVAL", "30s")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, int64(4242), cfg.OsuUserID)
	assert.Equal(t, 250*time.Millisecond, cfg.APIDelay)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.ReportInterval)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("OSU_CLIENT_ID", "")
	t.Setenv("OSU_CLIENT_SECRET", "")

	_, err := Load(zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("OSU_CLIENT_ID", "123")
	t.Setenv("OSU_CLIENT_SECRET", "secret")

	t.Setenv("PAGE_SIZE", "0")
	_, err := Load(zerolog.Nop())
	assert.Error(t, err)

	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("DB_DRIVER", "postgres")
	_, err = Load(zerolog.Nop())
	assert.Error(t, err)
}
