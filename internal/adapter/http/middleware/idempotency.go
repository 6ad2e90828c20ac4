package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/charter-booking/charter-booking-service/internal/adapter/http/response"
	"github.com/charter-booking/charter-booking-service/internal/domain"
)

const (
	// IdempotencyKeyHeader carries the client token of one submission attempt.
	IdempotencyKeyHeader = "Idempotency-Key"

	// IdempotencyHitHeader is set on responses rejected as duplicates.
	IdempotencyHitHeader = "X-Idempotency-Hit"

	idempotencyResultKey = "idempotency_result"
)

// IdempotencyConfig holds the key lifetimes.
type IdempotencyConfig struct {
	// LockTTL bounds how long an in-flight request holds its key
	LockTTL time.Duration

	// TTL is how long a completed key is remembered
	TTL time.Duration
}

// DefaultIdempotencyConfig returns the default key lifetimes.
// LockTTL covers the default booking write, notification write and event
// publish timeouts run back to back.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		LockTTL: 16 * time.Second,
		TTL:     24 * time.Hour,
	}
}

// Idempotency returns middleware that rejects repeated requests carrying the same Idempotency-Key.
// Requests without the header pass through. A completed key yields 409 with the original result;
// a key still in progress yields 409 as well. Non-2xx outcomes release the key so the client can retry.
// Store failures are logged and the request proceeds; the datastore still deduplicates on the key.
func Idempotency(store domain.IdempotencyStore, cfg IdempotencyConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get(IdempotencyKeyHeader))
			if key == "" || store == nil {
				return next(c)
			}

			ctx := c.Request().Context()

			reserved, err := store.Reserve(ctx, key, cfg.LockTTL)
			if err != nil {
				log.Warn().Err(err).Str("request_id", GetRequestID(c)).Msg("Idempotency store unavailable")
				return next(c)
			}

			if !reserved {
				return rejectDuplicate(c, store, key, log)
			}

			err = next(c)

			// The request context may already be cancelled at this point.
			bg := context.WithoutCancel(ctx)
			status := c.Response().Status
			result, _ := c.Get(idempotencyResultKey).(string)

			if err == nil && status >= 200 && status < 300 {
				if cerr := store.Complete(bg, key, domain.CompletedState(result), cfg.TTL); cerr != nil {
					log.Warn().Err(cerr).Str("request_id", GetRequestID(c)).Msg("Failed to complete idempotency key")
				}
			} else if rerr := store.Release(bg, key); rerr != nil {
				log.Warn().Err(rerr).Str("request_id", GetRequestID(c)).Msg("Failed to release idempotency key")
			}

			return err
		}
	}
}

func rejectDuplicate(c echo.Context, store domain.IdempotencyStore, key string, log zerolog.Logger) error {
	c.Response().Header().Set(IdempotencyHitHeader, "true")

	state, err := store.State(c.Request().Context(), key)
	if err != nil {
		log.Warn().Err(err).Str("request_id", GetRequestID(c)).Msg("Failed to read idempotency key")
	}

	details := map[string]string{"idempotencyKey": key}
	if result, ok := domain.ParseCompletedState(state); ok {
		if result != "" {
			details["bookingId"] = result
		}
	} else {
		details["state"] = "in_progress"
	}
	return response.Conflict(c, details)
}

// SetIdempotentResult records the identifier stored with the request's idempotency key.
func SetIdempotentResult(c echo.Context, result string) {
	c.Set(idempotencyResultKey, result)
}
