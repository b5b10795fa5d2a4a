package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/platform/observability"
	"github.com/teleflash/teleflash/internal/platform/worker"
	db "github.com/teleflash/teleflash/internal/storage"
)

const (
	dailyTaskName     = "report run"
	healthPoolMaxConn = 1
)

// RunScheduler serves health checks and fires RunOnce on the configured
// cron schedule until ctx is canceled.
func (a *App) RunScheduler(ctx context.Context) error {
	task, err := a.dailyTask()
	if err != nil {
		return err
	}

	opts := poolOptions(a.cfg)
	opts.MaxConns = healthPoolMaxConn
	opts.MinConns = 0

	healthDB, err := db.NewLazy(ctx, a.cfg.PostgresDSN, opts, a.logger)
	if err != nil {
		return fmt.Errorf("health check pool: %w", err)
	}
	defer healthDB.Close()

	go func() {
		if err := observability.NewServer(healthDB, a.cfg.HealthPort, a.logger).Start(ctx); err != nil {
			a.logger.Error().Err(err).Msg("health check server error")
		}
	}()

	a.logger.Info().Str("schedule", a.cfg.ScheduleCron).Time("next_run", task.NextRun()).Msg("scheduler started")

	err = worker.SingleTickerLoop(ctx, worker.SingleTickerConfig{
		Name:     "scheduler",
		Interval: a.cfg.SchedulerTickInterval,
		OnTick: func(ctx context.Context) {
			task.CheckAndRun(ctx, a.logger)
		},
		Logger: a.logger,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func (a *App) dailyTask() (*worker.DailyTask, error) {
	task, err := worker.NewDailyTask(dailyTaskName, a.cfg.ScheduleCron, func(ctx context.Context, _ *zerolog.Logger) error {
		return a.RunOnce(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	task.Now = a.now
	task.Rearm()

	return task, nil
}
