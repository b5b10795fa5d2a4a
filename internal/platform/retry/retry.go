// Package retry provides a bounded exponential retry policy shared by
// call sites that talk to flaky upstreams.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 5 * time.Second
	defaultMultiplier  = 2.0
)

// Policy describes how many times an operation is attempted and how long
// to wait between attempts. Delays grow as BaseDelay * Multiplier^n with
// no jitter.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64

	// Retryable decides whether an error is worth another attempt.
	// nil retries every error.
	Retryable func(err error) bool

	// OnRetry is called before each wait with the failed attempt number
	// (1-based), its error and the upcoming delay.
	OnRetry func(attempt int, err error, delay time.Duration)

	// Timer overrides the wall clock. Tests use it to record delays.
	Timer backoff.Timer
}

// Default returns 3 attempts with 5s and 10s waits.
func Default() Policy {
	return Policy{
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBaseDelay,
		Multiplier:  defaultMultiplier,
	}
}

// Do runs op until it succeeds, returns a non-retryable error, the
// attempts are exhausted or ctx is done. The last error is wrapped, so
// callers classify it with errors.Is / errors.As.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	operation := func() error {
		attempt++

		err := op(ctx)
		if err == nil {
			return nil
		}

		if p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}

	notify := func(err error, delay time.Duration) {
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}
	}

	b := backoff.WithContext(backoff.WithMaxRetries(p.exponential(), uint64(attempts-1)), ctx)

	if err := backoff.RetryNotifyWithTimer(operation, b, notify, p.Timer); err != nil {
		return fmt.Errorf("after %d attempts: %w", attempt, err)
	}

	return nil
}

func (p Policy) exponential() *backoff.ExponentialBackOff {
	base := p.BaseDelay
	if base <= 0 {
		base = defaultBaseDelay
	}

	mult := p.Multiplier
	if mult < 1 {
		mult = defaultMultiplier
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.Multiplier = mult
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = 0
	b.Reset()

	return b
}

// Delays lists the waits the policy would perform between attempts.
func (p Policy) Delays() []time.Duration {
	if p.MaxAttempts <= 1 {
		return nil
	}

	b := p.exponential()
	out := make([]time.Duration, 0, p.MaxAttempts-1)

	for i := 0; i < p.MaxAttempts-1; i++ {
		out = append(out, b.NextBackOff())
	}

	return out
}
