package mock

import (
	"context"
	"sync"
	"time"

	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/infrastructure/timeutil"
)

type idempotencyEntry struct {
	state     string
	expiresAt time.Time
}

// IdempotencyStore is an in-memory domain.IdempotencyStore with TTLs driven by a clock.
type IdempotencyStore struct {
	clock timeutil.Clock
	err   error

	mu      sync.Mutex
	entries map[string]idempotencyEntry
}

// NewIdempotencyStore creates an empty store. A nil clock uses the system time.
func NewIdempotencyStore(clock timeutil.Clock) *IdempotencyStore {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &IdempotencyStore{
		clock:   clock,
		entries: make(map[string]idempotencyEntry),
	}
}

// WithError makes every call fail with err, simulating an unavailable Redis.
func (s *IdempotencyStore) WithError(err error) *IdempotencyStore {
	s.err = err
	return s
}

// lookup returns the live entry for key. s.mu must be held.
func (s *IdempotencyStore) lookup(key string) (idempotencyEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return idempotencyEntry{}, false
	}
	if !s.clock.Now().Before(e.expiresAt) {
		delete(s.entries, key)
		return idempotencyEntry{}, false
	}
	return e, true
}

// Reserve implements domain.IdempotencyStore.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if s.err != nil {
		return false, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(key); ok {
		return false, nil
	}
	s.entries[key] = idempotencyEntry{state: domain.IdempotencyProcessing, expiresAt: s.clock.Now().Add(ttl)}
	return true, nil
}

// State implements domain.IdempotencyStore.
func (s *IdempotencyStore) State(ctx context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lookup(key)
	return e.state, nil
}

// Complete implements domain.IdempotencyStore.
func (s *IdempotencyStore) Complete(ctx context.Context, key, result string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = idempotencyEntry{state: result, expiresAt: s.clock.Now().Add(ttl)}
	return nil
}

// Release implements domain.IdempotencyStore.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if s.err != nil {
		return s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Ensure IdempotencyStore implements domain.IdempotencyStore at compile time.
var _ domain.IdempotencyStore = (*IdempotencyStore)(nil)
