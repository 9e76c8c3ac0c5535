package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	OsuClientID     string
	OsuClientSecret string
	OsuUserID       int64
	OsuAPIURL       string
	DBDriver        string
	DBPath          string
	ServerPort      string
	LogLevel        string
	APIDelay        time.Duration
	PageSize        int
	ReportInterval  time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		OsuClientID:     getEnv("OSU_CLIENT_ID", ""),
		OsuClientSecret: getEnv("OSU_CLIENT_SECRET", ""),
		OsuAPIURL:       getEnv("OSU_API_URL", "https://osu.ppy.sh"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite3"),
		DBPath:          getEnv("DB_PATH", "database.db"),
		ServerPort:      getEnv("SERVER_PORT", "3001"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.OsuClientID == "" || cfg.OsuClientSecret == "" {
		return nil, fmt.Errorf("OSU_CLIENT_ID and OSU_CLIENT_SECRET are required")
	}

	var err error
	if cfg.OsuUserID, err = getEnvInt64("OSU_USER_ID", 0); err != nil {
		return nil, err
	}

	delayMS, err := getEnvInt64("API_DELAY_MS", 100)
	if err != nil {
		return nil, err
	}
	cfg.APIDelay = time.Duration(delayMS) * time.Millisecond

	pageSize, err := getEnvInt64("PAGE_SIZE", 100)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", pageSize)
	}
	cfg.PageSize = int(pageSize)

	if cfg.ReportInterval, err = time.ParseDuration(getEnv("REPORT_INTERVAL", "1m")); err != nil {
		return nil, fmt.Errorf("invalid REPORT_INTERVAL: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite3", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	logger.Info().
		Str("db_driver", cfg.DBDriver).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int64("user_id", cfg.OsuUserID).
		Dur("api_delay", cfg.APIDelay).
		Int("page_size", cfg.PageSize).
		Dur("report_interval", cfg.ReportInterval).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

var Module = fx.Provide(Load)
