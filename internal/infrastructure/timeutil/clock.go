// Package timeutil provides the clock used to stamp bookings and expire idempotency keys.
package timeutil

import (
	"sync"
	"time"
)

// Clock abstracts the current time so that stored timestamps and TTLs can be tested.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock creates a new RealClock instance.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock is a settable clock. It is safe for concurrent use, so a single
// instance can back a whole test server.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock creates a mock clock fixed at t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t.UTC()}
}

// NewMockClockFromString creates a mock clock from an RFC3339 timestamp.
// It panics on malformed input and is meant for test fixtures.
func NewMockClockFromString(timestamp string) *MockClock {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		panic("timeutil: invalid RFC3339 timestamp: " + err.Error())
	}
	return NewMockClock(t)
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t.UTC()
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// AdvanceHours moves the clock forward by the given number of hours.
func (m *MockClock) AdvanceHours(hours int) {
	m.Advance(time.Duration(hours) * time.Hour)
}

// Ensure interfaces are implemented.
var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
)
