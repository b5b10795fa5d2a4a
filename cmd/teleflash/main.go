package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/app"
	"github.com/teleflash/teleflash/internal/platform/config"
)

func main() {
	mode := flag.String("mode", config.ModeScheduler, "Run mode (scheduler, fetch, report, run)")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	if err := cfg.Validate(*mode); err != nil {
		logger.Fatal().Err(err).Str("mode", *mode).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, &logger)

	if err := runMode(ctx, application, *mode); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")

			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func runMode(ctx context.Context, application *app.App, mode string) error {
	switch mode {
	case config.ModeScheduler:
		return application.RunScheduler(ctx)
	case config.ModeFetch:
		return application.RunFetch(ctx)
	case config.ModeReport:
		return application.RunReport(ctx)
	case config.ModeRun:
		return application.RunOnce(ctx)
	default:
		log.Fatalf("Usage: %s --mode=[scheduler|fetch|report|run]", os.Args[0])

		return nil
	}
}
