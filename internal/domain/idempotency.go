package domain

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -source=idempotency.go -destination=mock_idempotency.go -package=domain

// Idempotency key states.
const (
	IdempotencyProcessing      = "PROCESSING"
	idempotencyCompletedPrefix = "COMPLETED:"
)

// IdempotencyStore tracks client idempotency keys across requests.
type IdempotencyStore interface {
	// Reserve marks key as in progress if it is unused. It reports whether the key was reserved.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// State returns the stored state of key, or "" when the key is unknown.
	State(ctx context.Context, key string) (string, error)

	// Complete records the result of a finished request under key.
	Complete(ctx context.Context, key, result string, ttl time.Duration) error

	// Release forgets key so the client can retry.
	Release(ctx context.Context, key string) error
}

// CompletedState encodes the state stored for a finished request.
func CompletedState(result string) string {
	return idempotencyCompletedPrefix + result
}

// ParseCompletedState extracts the result from a completed state.
func ParseCompletedState(state string) (string, bool) {
	if !strings.HasPrefix(state, idempotencyCompletedPrefix) {
		return "", false
	}
	return strings.TrimPrefix(state, idempotencyCompletedPrefix), true
}
