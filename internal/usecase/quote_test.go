package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// stubCatalog is an in-memory AircraftCatalog and AirportDirectory.
type stubCatalog struct {
	aircraft []domain.AircraftCategory
	airports map[string]domain.Airport
}

func (s *stubCatalog) All() []domain.AircraftCategory { return s.aircraft }

func (s *stubCatalog) ByClass(class domain.VehicleClass) []domain.AircraftCategory {
	var out []domain.AircraftCategory
	for _, a := range s.aircraft {
		if a.Class == class {
			out = append(out, a)
		}
	}
	return out
}

func (s *stubCatalog) Get(id string) (domain.AircraftCategory, bool) {
	for _, a := range s.aircraft {
		if a.ID == id {
			return a, true
		}
	}
	return domain.AircraftCategory{}, false
}

func (s *stubCatalog) Lookup(code string) (domain.Airport, bool) {
	a, ok := s.airports[code]
	return a, ok
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		aircraft: []domain.AircraftCategory{
			createJet("light-jet", 6, 2800, 750, 4800),
			createJet("midsize-jet", 8, 3500, 850, 7200),
			createHelicopter("light-helicopter", 4, 200, 2100, 120, 350),
		},
		airports: map[string]domain.Airport{
			"LBG": {Code: "LBG", Name: "Paris Le Bourget", City: "Paris", Location: domain.Coordinates{Lat: 48.9694, Lng: 2.4414}},
			"NCE": {Code: "NCE", Name: "Nice Côte d'Azur", City: "Nice", Location: domain.Coordinates{Lat: 43.6584, Lng: 7.2159}},
			"MCM": {Code: "MCM", Name: "Monaco Heliport", City: "Monaco", Location: domain.Coordinates{Lat: 43.7253, Lng: 7.4197}},
		},
	}
}

func newTestQuoteUseCase(config *QuoteConfig) QuoteUseCase {
	c := newStubCatalog()
	return NewQuoteUseCase(c, c, config, zerolog.Nop())
}

func TestQuote_FixedWing(t *testing.T) {
	uc := newTestQuoteUseCase(nil)

	quote, err := uc.Quote(context.Background(), domain.QuoteRequest{
		Origin:       " lbg ",
		Destination:  "nce",
		Passengers:   6,
		VehicleClass: domain.VehicleClassFixedWing,
	})

	require.NoError(t, err)
	assert.Equal(t, "LBG", quote.Origin.Code)
	assert.Equal(t, "NCE", quote.Destination.Code)
	assert.InDelta(t, 695, quote.DistanceKm, 10)
	assert.Equal(t, quote.DistanceKm, quote.Route.DistanceKm)
	assert.Equal(t, domain.DefaultCurrency, quote.Currency)
	assert.Nil(t, quote.SuggestedClass)

	require.Len(t, quote.Candidates, 2)
	// Both fly under an hour, so the cheaper hourly rate wins.
	assert.Equal(t, "light-jet", quote.Candidates[0].Category().ID)
	assert.Equal(t, int64(4800), quote.Candidates[0].(domain.EligibleCandidate).Price)
}

func TestQuote_SuggestsOtherClass(t *testing.T) {
	uc := newTestQuoteUseCase(&QuoteConfig{Currency: "eur"})

	// LBG-NCE is beyond the helicopter's 350 km ceiling.
	quote, err := uc.Quote(context.Background(), domain.QuoteRequest{
		Origin:       "LBG",
		Destination:  "NCE",
		Passengers:   2,
		VehicleClass: domain.VehicleClassRotary,
	})

	require.NoError(t, err)
	assert.Empty(t, quote.Candidates)
	require.NotNil(t, quote.SuggestedClass)
	assert.Equal(t, domain.VehicleClassFixedWing, *quote.SuggestedClass)
	assert.Equal(t, "EUR", quote.Currency)
}

func TestQuote_ShortRotaryHop(t *testing.T) {
	uc := newTestQuoteUseCase(nil)

	quote, err := uc.Quote(context.Background(), domain.QuoteRequest{
		Origin:       "NCE",
		Destination:  "MCM",
		Passengers:   2,
		VehicleClass: domain.VehicleClassRotary,
	})

	require.NoError(t, err)
	require.Len(t, quote.Candidates, 1)
	c := quote.Candidates[0].(domain.EligibleCandidate)
	assert.Equal(t, 1.0, c.FlightHours)
	assert.Equal(t, int64(2100), c.Price)
	assert.Nil(t, quote.SuggestedClass)
}

func TestQuote_NoSuggestionWhenNeitherClassFits(t *testing.T) {
	uc := newTestQuoteUseCase(nil)

	quote, err := uc.Quote(context.Background(), domain.QuoteRequest{
		Origin:       "LBG",
		Destination:  "NCE",
		Passengers:   30,
		VehicleClass: domain.VehicleClassFixedWing,
	})

	require.NoError(t, err)
	assert.Empty(t, quote.Candidates)
	assert.Nil(t, quote.SuggestedClass)
}

func TestQuote_Errors(t *testing.T) {
	tests := []struct {
		name       string
		req        domain.QuoteRequest
		wantErr    error
		wantFields []string
	}{
		{
			name:    "unknown origin",
			req:     domain.QuoteRequest{Origin: "XXX", Destination: "NCE", Passengers: 1, VehicleClass: domain.VehicleClassFixedWing},
			wantErr: domain.ErrAirportNotFound,
		},
		{
			name:    "unknown destination",
			req:     domain.QuoteRequest{Origin: "LBG", Destination: "YYY", Passengers: 1, VehicleClass: domain.VehicleClassFixedWing},
			wantErr: domain.ErrAirportNotFound,
		},
		{
			name:       "same airports",
			req:        domain.QuoteRequest{Origin: "LBG", Destination: "lbg", Passengers: 1, VehicleClass: domain.VehicleClassFixedWing},
			wantErr:    domain.ErrValidationFailed,
			wantFields: []string{"destination"},
		},
		{
			name:       "everything missing",
			req:        domain.QuoteRequest{},
			wantErr:    domain.ErrValidationFailed,
			wantFields: []string{"origin", "destination", "passengers", "vehicleClass"},
		},
	}

	uc := newTestQuoteUseCase(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := uc.Quote(context.Background(), tt.req)

			require.Error(t, err)
			assert.Nil(t, quote)
			assert.True(t, errors.Is(err, tt.wantErr))

			if tt.wantFields != nil {
				var verrs *domain.ValidationErrors
				require.True(t, errors.As(err, &verrs))
				for _, f := range tt.wantFields {
					assert.Contains(t, verrs.ToMap(), f)
				}
			}
		})
	}
}

func TestListAircraft(t *testing.T) {
	uc := newTestQuoteUseCase(nil)

	assert.Len(t, uc.ListAircraft(nil), 3)

	rotary := domain.VehicleClassRotary
	list := uc.ListAircraft(&rotary)
	require.Len(t, list, 1)
	assert.Equal(t, "light-helicopter", list[0].ID)
}

func TestAirport(t *testing.T) {
	uc := newTestQuoteUseCase(nil)

	a, err := uc.Airport("mcm")
	require.NoError(t, err)
	assert.Equal(t, "Monaco", a.City)

	_, err = uc.Airport("ZZZ")
	assert.True(t, errors.Is(err, domain.ErrAirportNotFound))
}
