package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"osu-dumper/internal/config"
	"osu-dumper/internal/constants"
	fxmodules "osu-dumper/internal/fx"
	"osu-dumper/internal/ingest"
	"osu-dumper/internal/service"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	userIdent string
	refresh   bool
	delayMS   int64
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "osu-dump",
		Short: "Dump every score of an osu! user into the local database",
		Long: `osu-dump walks the most played maps of a user, fetches every score the
user has on maps with a leaderboard and stores them together with the star
rating of the mod combo they were set with.

Configuration is read from .env and the environment (OSU_CLIENT_ID,
OSU_CLIENT_SECRET, OSU_USER_ID, DB_PATH, API_DELAY_MS, ...).

Press Ctrl+C once to stop after the current page, twice to abort.`,
		SilenceUsage: true,
		RunE:         runDump,
	}

	rootCmd.Flags().StringVarP(&userIdent, "user", "u", "", "username or id to dump, defaults to OSU_USER_ID")
	rootCmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "refetch and overwrite stored star ratings")
	rootCmd.Flags().Int64Var(&delayMS, "delay", -1, "milliseconds to wait after each API call, defaults to API_DELAY_MS")

	return rootCmd
}

func runDump(cmd *cobra.Command, args []string) error {
	var (
		dumps    *service.DumpService
		users    *service.UserService
		throttle *ingest.FixedInterval
		cfg      *config.Config
		sqlDB    *sql.DB
		logger   zerolog.Logger
	)

	app := fx.New(
		fxmodules.Core,
		fx.NopLogger,
		fx.Populate(&dumps, &users, &throttle, &cfg, &sqlDB, &logger),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		app.Stop(stopCtx)
		sqlDB.Close()
	}()

	if delayMS >= 0 {
		throttle.SetInterval(time.Duration(delayMS) * time.Millisecond)
	}

	ctx, abort := context.WithCancel(context.Background())
	defer abort()

	if userIdent != "" {
		if _, err := users.SetUser(ctx, userIdent); err != nil {
			return err
		}
	} else if err := users.LoadConfigured(ctx, cfg.OsuUserID); err != nil {
		return err
	}

	gate := ingest.NewGate()
	interrupts := make(chan os.Signal, 2)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)
	go watchInterrupts(ctx, interrupts, gate, abort, logger)

	result, err := dumps.Dump(ctx, refresh, nil, gate)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s scores saved, %s skipped, %s maps seen, %s API calls\n",
		result.Outcome,
		humanize.Comma(int64(result.ScoresSaved)),
		humanize.Comma(int64(result.ScoresSkipped)),
		humanize.Comma(int64(result.MapsSeen)),
		humanize.Comma(result.Calls),
	)
	return nil
}

// watchInterrupts turns the first interrupt into a cooperative cancel and the
// second into an abort. It returns once ctx is done.
func watchInterrupts(ctx context.Context, interrupts <-chan os.Signal, gate *ingest.Gate, abort context.CancelFunc, logger zerolog.Logger) {
	select {
	case <-interrupts:
	case <-ctx.Done():
		return
	}
	logger.Warn().Msg("stopping after the current page, interrupt again to abort")
	gate.RequestCancel()

	select {
	case <-interrupts:
		abort()
	case <-ctx.Done():
	}
}
