// Package app wires configuration, storage and the pipeline stages into
// the runnable modes:
//
//   - fetch: one ingestion pass over the tracked channels
//   - report: one summarize-and-publish pass over recent posts
//   - run: fetch, then report if the fetch connected
//   - scheduler: a daily run on a cron schedule, plus the health server
//
// Every run opens its own storage connection and closes it at the end.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/core/domain"
	"github.com/teleflash/teleflash/internal/ingest/reader"
	"github.com/teleflash/teleflash/internal/output/report"
	"github.com/teleflash/teleflash/internal/platform/config"
	"github.com/teleflash/teleflash/internal/platform/observability"
	"github.com/teleflash/teleflash/internal/process/filters"
	db "github.com/teleflash/teleflash/internal/storage"
)

const (
	stageFetch  = "fetch"
	stageReport = "report"
	stageRun    = "run"

	statusOK     = "ok"
	statusFailed = "failed"

	logFieldRunID = "run_id"
	logFieldStage = "stage"
)

// Store is the storage surface a run needs.
type Store interface {
	reader.Repository
	Ping(ctx context.Context) error
	RecentPosts(ctx context.Context, handles []string, since time.Time) ([]domain.RecentPost, error)
	SummaryPeerIDs(ctx context.Context, handles []string) (map[string]int64, error)
	SaveSummary(ctx context.Context, summary domain.Summary, sources []domain.SummarySource) (int64, error)
	Close()
}

var _ Store = (*db.DB)(nil)

// Fetcher runs one ingestion pass.
type Fetcher interface {
	Run(ctx context.Context, handles []string) (*reader.FetchResult, error)
}

// ReportRunner turns filtered posts into published reports.
type ReportRunner interface {
	Run(ctx context.Context, posts []domain.RecentPost) report.Result
}

// App holds the configuration and the constructors used by each run.
type App struct {
	cfg    *config.Config
	logger *zerolog.Logger
	filter *filters.Filter
	now    func() time.Time

	openStore   func(ctx context.Context, logger *zerolog.Logger) (Store, error)
	newFetcher  func(repo reader.Repository, logger *zerolog.Logger) Fetcher
	newReporter func(logger *zerolog.Logger) (ReportRunner, error)
}

// New creates an App backed by Postgres, MTProto, the completion endpoint
// and the configured chat sink.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	a := &App{
		cfg:    cfg,
		logger: logger,
		filter: filters.Default(),
		now:    time.Now,
	}

	a.openStore = a.openDatabase
	a.newFetcher = func(repo reader.Repository, logger *zerolog.Logger) Fetcher {
		return reader.New(cfg, repo, logger)
	}
	a.newReporter = a.buildReporter

	return a
}

// RunFetch performs one fetch run.
func (a *App) RunFetch(ctx context.Context) error {
	return a.run(ctx, stageFetch, true, func(ctx context.Context, store Store, logger *zerolog.Logger) error {
		return a.fetch(ctx, store, logger)
	})
}

// RunReport performs one report run over the posts already stored. When
// storage cannot be opened the run still publishes, with no posts.
func (a *App) RunReport(ctx context.Context) error {
	return a.run(ctx, stageReport, false, func(ctx context.Context, store Store, logger *zerolog.Logger) error {
		return a.report(ctx, store, logger)
	})
}

// RunOnce fetches and, when the fetch connected, reports.
func (a *App) RunOnce(ctx context.Context) error {
	return a.run(ctx, stageRun, true, func(ctx context.Context, store Store, logger *zerolog.Logger) error {
		if err := a.fetch(ctx, store, logger); err != nil {
			logger.Error().Err(err).Msg("fetch failed, skipping report")

			return err
		}

		return a.report(ctx, store, logger)
	})
}

// run frames one stage. store is nil inside body only when storeRequired
// is false and storage could not be opened.
func (a *App) run(ctx context.Context, stage string, storeRequired bool, body func(ctx context.Context, store Store, logger *zerolog.Logger) error) error {
	runLogger := a.logger.With().Str(logFieldRunID, uuid.NewString()).Str(logFieldStage, stage).Logger()
	logger := &runLogger
	start := time.Now()

	logger.Info().Msg("run started")

	err := a.withStore(ctx, logger, storeRequired, func(store Store) error {
		return body(ctx, store, logger)
	})

	status := statusOK
	if err != nil {
		status = statusFailed
	}

	observability.RunDuration.WithLabelValues(stage, status).Observe(time.Since(start).Seconds())

	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}

	event.Str("status", status).Dur("duration", time.Since(start)).Msg("run finished")

	return err
}

func (a *App) withStore(ctx context.Context, logger *zerolog.Logger, required bool, fn func(store Store) error) error {
	store, err := a.openStore(ctx, logger)
	if err != nil {
		if required {
			return fmt.Errorf("open storage: %w", err)
		}

		logger.Error().Err(err).Msg("storage unavailable, continuing without it")

		return fn(nil)
	}
	defer store.Close()

	return fn(store)
}

func (a *App) openDatabase(ctx context.Context, logger *zerolog.Logger) (Store, error) {
	database, err := db.NewWithOptions(ctx, a.cfg.PostgresDSN, poolOptions(a.cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := database.Migrate(ctx); err != nil {
		database.Close()

		return nil, fmt.Errorf("migrate: %w", err)
	}

	return database, nil
}

func poolOptions(cfg *config.Config) db.PoolOptions {
	return db.PoolOptions{
		MaxConns:          cfg.DBMaxConnections,
		MinConns:          cfg.DBMinConnections,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	}
}
