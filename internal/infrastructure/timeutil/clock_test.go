package timeutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClock_NowIsUTC(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	now := clock.Now()
	after := time.Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.False(t, now.Before(before.Truncate(time.Second)))
	assert.False(t, now.After(after))
}

func TestMockClock_NormalizesToUTC(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	local := time.Date(2026, 7, 14, 11, 30, 0, 0, paris)

	clock := NewMockClock(local)

	assert.Equal(t, time.UTC, clock.Now().Location())
	assert.True(t, clock.Now().Equal(local))
	assert.Equal(t, 9, clock.Now().Hour())
}

func TestMockClock_SetAndAdvance(t *testing.T) {
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	tests := []struct {
		name string
		act  func()
		want time.Time
	}{
		{"fixed until moved", func() {}, start},
		{"advance", func() { clock.Advance(90 * time.Second) }, start.Add(90 * time.Second)},
		{"advance hours past key ttl", func() { clock.AdvanceHours(24) }, start.Add(24*time.Hour + 90*time.Second)},
		{"negative advance", func() { clock.Advance(-90 * time.Second) }, start.Add(24 * time.Hour)},
		{"set", func() { clock.Set(start) }, start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.act()
			assert.Equal(t, tt.want, clock.Now())
		})
	}
}

func TestNewMockClockFromString(t *testing.T) {
	clock := NewMockClockFromString("2026-06-01T12:00:00+02:00")
	assert.Equal(t, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), clock.Now())

	assert.Panics(t, func() { NewMockClockFromString("2026-06-01") })
}

func TestMockClock_ConcurrentUse(t *testing.T) {
	clock := NewMockClock(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			clock.Advance(time.Minute)
		}()
		go func() {
			defer wg.Done()
			_ = clock.Now()
		}()
	}
	wg.Wait()

	require.Equal(t, time.Date(2026, 6, 1, 0, 50, 0, 0, time.UTC), clock.Now())
}

func TestClock_Interface(t *testing.T) {
	clocks := []Clock{NewRealClock(), NewMockClock(time.Now())}
	for _, c := range clocks {
		assert.False(t, c.Now().IsZero())
	}
}
