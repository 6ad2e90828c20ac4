package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// TestCatalog_ImplementsInterfaces ensures Catalog implements the domain lookups.
func TestCatalog_ImplementsInterfaces(t *testing.T) {
	var _ domain.AircraftCatalog = (*Catalog)(nil)
	var _ domain.AirportDirectory = (*Catalog)(nil)
}

func TestDefault(t *testing.T) {
	c, err := Default(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "USD", c.Currency())
	assert.NotEmpty(t, c.ByClass(domain.VehicleClassFixedWing))
	assert.NotEmpty(t, c.ByClass(domain.VehicleClassRotary))
	assert.Equal(t, len(c.All()), len(c.ByClass(domain.VehicleClassFixedWing))+len(c.ByClass(domain.VehicleClassRotary)))
	assert.Greater(t, c.AirportCount(), 20)

	// Every shipped entry must satisfy the catalog invariants.
	for _, a := range c.All() {
		assert.NoError(t, a.Validate(), a.ID)
		if a.Class == domain.VehicleClassRotary {
			assert.Positive(t, a.MaxDistanceKm, a.ID)
			assert.Positive(t, a.MaxFlightTimeMinutes, a.ID)
		}
	}

	midsize, ok := c.Get("midsize-jet")
	require.True(t, ok)
	assert.Equal(t, 8, midsize.Capacity)
	assert.Equal(t, 3500, midsize.RangeKm)
	assert.Equal(t, 850, midsize.SpeedKmh)
	assert.Equal(t, 7200.0, midsize.PricePerHour)

	lbg, ok := c.Lookup("lbg")
	require.True(t, ok)
	assert.Equal(t, "Paris", lbg.City)

	_, ok = c.Lookup("XXX")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	airports := []byte(`[
		{"code": "nce", "name": "Nice", "city": "Nice", "country": "fr", "lat": 43.6584, "lng": 7.2159},
		{"code": "NICE", "name": "Bad", "lat": 0, "lng": 0},
		{"code": "ZZZ", "name": "Off the map", "lat": 95, "lng": 0}
	]`)

	tests := []struct {
		name        string
		aircraft    string
		wantIDs     []string
		wantErr     bool
		checkResult func(*testing.T, *Catalog)
	}{
		{
			name: "skips invalid and duplicate entries",
			aircraft: `{"currency": "eur", "aircraft": [
				{"id": "jet-a", "category": "jet", "capacity": 6, "range_km": 3000, "speed_kmh": 800, "price_per_hour": 5000},
				{"id": "jet-a", "category": "jet", "capacity": 9, "range_km": 3000, "speed_kmh": 800, "price_per_hour": 5000},
				{"id": "jet-b", "category": "jet", "capacity": 0, "range_km": 3000, "speed_kmh": 800, "price_per_hour": 5000},
				{"id": "blimp", "category": "airship", "capacity": 4, "speed_kmh": 80, "price_per_hour": 900},
				{"id": "heli-a", "category": "helicopter", "capacity": 4, "speed_kmh": 200, "price_per_hour": 1800, "max_flight_time_minutes": 60, "max_distance_km": 300}
			]}`,
			wantIDs: []string{"jet-a", "heli-a"},
			checkResult: func(t *testing.T, c *Catalog) {
				assert.Equal(t, "EUR", c.Currency())
				a, _ := c.Get("jet-a")
				assert.Equal(t, 6, a.Capacity)
				assert.Equal(t, "jet-a", a.Name)
				h, _ := c.Get("heli-a")
				assert.Equal(t, 300, h.MaxDistanceKm)
				assert.Equal(t, 1, c.AirportCount())
				nce, ok := c.Lookup("NCE")
				require.True(t, ok)
				assert.Equal(t, "FR", nce.Country)
			},
		},
		{
			name: "ceilings dropped for fixed-wing",
			aircraft: `{"aircraft": [
				{"id": "jet-a", "category": "fixed-wing", "capacity": 6, "speed_kmh": 800, "price_per_hour": 5000, "max_distance_km": 100}
			]}`,
			wantIDs: []string{"jet-a"},
			checkResult: func(t *testing.T, c *Catalog) {
				a, _ := c.Get("jet-a")
				assert.Zero(t, a.MaxDistanceKm)
				assert.Equal(t, domain.DefaultCurrency, c.Currency())
			},
		},
		{
			name:     "no valid aircraft",
			aircraft: `{"aircraft": [{"id": "x", "category": "jet", "capacity": 0, "speed_kmh": 1}]}`,
			wantErr:  true,
		},
		{
			name:     "malformed json",
			aircraft: `{"aircraft": [`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.aircraft), airports, zerolog.Nop())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidCatalog))
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0)
			for _, a := range c.All() {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)

			if tt.checkResult != nil {
				tt.checkResult(t, c)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded catalog", func(t *testing.T) {
		c, err := Load("", zerolog.Nop())
		require.NoError(t, err)
		_, ok := c.Get("heavy-jet")
		assert.True(t, ok)
	})

	t.Run("reads file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "aircraft.json")
		content := `{"currency": "CHF", "aircraft": [{"id": "only-jet", "category": "jet", "capacity": 5, "range_km": 2500, "speed_kmh": 750, "price_per_hour": 4500}]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		c, err := Load(path, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "CHF", c.Currency())
		assert.Len(t, c.All(), 1)
		assert.Greater(t, c.AirportCount(), 0)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"), zerolog.Nop())
		assert.Error(t, err)
	})
}
