package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DailyTask is a task fired by a cron schedule and polled from a ticker
// loop. It fires at most once per due time: a check that arrives late
// still runs the task, but missed occurrences are not replayed.
type DailyTask struct {
	// Name identifies the task for logging.
	Name string

	// Run executes the task.
	Run func(ctx context.Context, logger *zerolog.Logger) error

	// OnError is called when Run returns an error.
	// If nil, errors are only logged.
	OnError func(err error)

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time

	schedule cron.Schedule
	nextRun  time.Time
	lastRun  time.Time
}

// NewDailyTask parses a standard five-field cron expression (an optional
// CRON_TZ= prefix selects the zone) and arms the task for the first
// occurrence after now.
func NewDailyTask(name, spec string, run func(ctx context.Context, logger *zerolog.Logger) error) (*DailyTask, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	t := &DailyTask{Name: name, Run: run, schedule: schedule}
	t.nextRun = schedule.Next(t.now())

	return t, nil
}

func (t *DailyTask) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}

	return time.Now()
}

// NextRun returns the armed due time.
func (t *DailyTask) NextRun() time.Time {
	return t.nextRun
}

// LastRun returns when the task last started, zero if it never ran.
func (t *DailyTask) LastRun() time.Time {
	return t.lastRun
}

// Rearm recomputes the due time relative to the current clock.
func (t *DailyTask) Rearm() {
	t.nextRun = t.schedule.Next(t.now())
}

// CheckAndRun runs the task if it is due and reports whether it ran.
// The next due time is computed after Run returns, whatever the outcome,
// so a failing run waits for the next occurrence instead of retrying on
// every tick.
func (t *DailyTask) CheckAndRun(ctx context.Context, logger *zerolog.Logger) bool {
	now := t.now()
	if !ShouldRunDaily(now, t.nextRun) {
		return false
	}

	taskLogger := getLogger(logger).With().Str(logFieldTask, t.Name).Logger()
	taskLogger.Info().Time("due", t.nextRun).Msgf("Starting daily %s", t.Name)

	t.lastRun = now

	if err := t.Run(ctx, &taskLogger); err != nil {
		taskLogger.Error().Err(err).Msgf("failed to run daily %s", t.Name)

		if t.OnError != nil {
			t.OnError(err)
		}
	}

	t.Rearm()
	taskLogger.Info().Time("next_run", t.nextRun).Msgf("daily %s finished", t.Name)

	return true
}

// ShouldRunDaily reports whether a task armed for nextRun is due at now.
func ShouldRunDaily(now, nextRun time.Time) bool {
	if nextRun.IsZero() {
		return false
	}

	return !now.Before(nextRun)
}
