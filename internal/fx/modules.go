package fx

import (
	"database/sql"
	"osu-dumper/internal/api"
	"osu-dumper/internal/config"
	"osu-dumper/internal/database"
	"osu-dumper/internal/db"
	"osu-dumper/internal/ingest"
	"osu-dumper/internal/logger"
	"osu-dumper/internal/repository"
	"osu-dumper/internal/server"
	"osu-dumper/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// ProvideThrottle is the process wide pacing of osu! API calls. The HTTP host
// changes its interval at runtime.
func ProvideThrottle(cfg *config.Config) *ingest.FixedInterval {
	return ingest.NewFixedInterval(cfg.APIDelay)
}

func ProvideThrottler(t *ingest.FixedInterval) ingest.Throttler {
	return t
}

func ProvidePipeline(src ingest.Source, sink ingest.Sink, throttle ingest.Throttler, cfg *config.Config, logger zerolog.Logger) *ingest.Pipeline {
	return ingest.NewPipeline(src, sink, throttle, ingest.Config{
		PageSize:       cfg.PageSize,
		ReportInterval: cfg.ReportInterval,
	}, logger)
}

// Core is everything needed to run ingestion, without a host.
var Core = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewUserRepository),
	fx.Provide(repository.NewBeatmapRepository),
	fx.Provide(repository.NewModComboRepository),
	fx.Provide(repository.NewScoreRepository),
	// api client
	fx.Provide(api.NewOsuClient),
	// ingestion
	fx.Provide(ProvideThrottle),
	fx.Provide(ProvideThrottler),
	fx.Provide(service.NewOsuSource),
	fx.Provide(service.NewRepositorySink),
	fx.Provide(ProvidePipeline),
	// svc
	fx.Provide(service.NewUserService),
	fx.Provide(service.NewDumpService),
	fx.Provide(service.NewTopPlaysService),
)

var Module = fx.Options(
	Core,
	// server
	fx.Provide(server.NewProgressHub),
	fx.Provide(server.NewDumpServer),
)
