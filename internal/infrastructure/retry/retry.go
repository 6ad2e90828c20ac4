// Package retry runs calls to external services with exponential backoff.
// It is used for the payments API and for datastore connectivity at startup.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"
)

// Config holds the retry configuration options.
type Config struct {
	// MaxAttempts is the number of calls including the first one.
	MaxAttempts int

	// InitialDelay is the wait before the second call.
	InitialDelay time.Duration

	// MaxDelay caps a single wait, jitter included.
	MaxDelay time.Duration

	// Multiplier grows the wait after every failed call.
	Multiplier float64

	// JitterFactor adds up to this fraction of the wait at random (0.0 to 1.0).
	JitterFactor float64

	// RetryIf reports whether a failure may be retried. Nil retries everything.
	RetryIf func(error) bool

	// OnRetry is called before each wait with the failed attempt number and its error.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultConfig is a short backoff for in-process callers.
var DefaultConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.1,
}

// PaymentsConfig is used for calls to the hosted payments API.
var PaymentsConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     5 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.2,
}

// StartupConfig waits for a dependency that may still be starting, e.g. PostgreSQL in docker compose.
var StartupConfig = Config{
	MaxAttempts:  5,
	InitialDelay: 500 * time.Millisecond,
	MaxDelay:     5 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.1,
}

// Do calls fn until it succeeds, returns a non-retryable error, attempts run out or ctx ends.
// It returns the last error of fn, or the context error when ctx ended first.
func Do(ctx context.Context, fn func() error, cfg Config) error {
	_, err := DoWithResult(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	}, cfg)
	return err
}

// DoWithResult is Do for functions that return a value.
func DoWithResult[T any](ctx context.Context, fn func() (T, error), cfg Config) (T, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var (
		result  T
		lastErr error
	)
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if cfg.RetryIf != nil && !cfg.RetryIf(lastErr) {
			return result, lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		wait := backoff(delay, cfg.MaxDelay, cfg.JitterFactor)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, lastErr, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
	}

	return result, lastErr
}

// backoff adds jitter to delay and caps the result at maxDelay (0 means no cap).
func backoff(delay, maxDelay time.Duration, jitterFactor float64) time.Duration {
	wait := delay + time.Duration(rand.Float64()*float64(delay)*jitterFactor)
	if maxDelay > 0 && wait > maxDelay {
		wait = maxDelay
	}
	return wait
}

// RetryableStatus reports whether an HTTP response status is worth another attempt:
// 429 and every 5xx are, other statuses are not.
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// Permanent marks an error that must not be retried.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string {
	if p.Err == nil {
		return "permanent error"
	}
	return p.Err.Error()
}

func (p *Permanent) Unwrap() error {
	return p.Err
}

// NewPermanent wraps err so that SkipPermanent stops retrying. A nil err stays nil.
func NewPermanent(err error) error {
	if err == nil {
		return nil
	}
	return &Permanent{Err: err}
}

// IsPermanent reports whether err carries a Permanent marker.
func IsPermanent(err error) bool {
	var permanent *Permanent
	return errors.As(err, &permanent)
}

// Cause strips the Permanent marker so it does not reach callers.
func Cause(err error) error {
	var permanent *Permanent
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}

// SkipPermanent is a RetryIf predicate that stops on permanent errors.
func SkipPermanent(err error) bool {
	return !IsPermanent(err)
}

// WithRetryIf returns a copy of c with the given predicate.
func (c Config) WithRetryIf(fn func(error) bool) Config {
	c.RetryIf = fn
	return c
}

// WithOnRetry returns a copy of c with the given retry hook.
func (c Config) WithOnRetry(fn func(attempt int, err error, wait time.Duration)) Config {
	c.OnRetry = fn
	return c
}

// WithMaxAttempts returns a copy of c with the given attempt budget.
func (c Config) WithMaxAttempts(n int) Config {
	c.MaxAttempts = n
	return c
}
