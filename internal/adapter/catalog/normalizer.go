package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// aircraftCatalogJSON is the on-disk catalog document.
type aircraftCatalogJSON struct {
	Currency string         `json:"currency"`
	Aircraft []aircraftJSON `json:"aircraft"`
}

// aircraftJSON mirrors one row of the aircraft catalog.
type aircraftJSON struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	Capacity             int     `json:"capacity"`
	RangeKm              int     `json:"range_km"`
	SpeedKmh             int     `json:"speed_kmh"`
	PricePerHour         float64 `json:"price_per_hour"`
	CO2PerHour           float64 `json:"co2_per_hour"`
	CO2OffsetPerHour     float64 `json:"co2_offset_per_hour"`
	MaxFlightTimeMinutes int     `json:"max_flight_time_minutes"`
	MaxDistanceKm        int     `json:"max_distance_km"`
}

// airportJSON mirrors one row of the airport directory.
type airportJSON struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// normalizeAircraft converts a catalog row to a domain AircraftCategory.
func normalizeAircraft(raw aircraftJSON) (domain.AircraftCategory, error) {
	class, err := domain.ParseVehicleClass(raw.Category)
	if err != nil {
		return domain.AircraftCategory{}, err
	}

	a := domain.AircraftCategory{
		ID:               strings.TrimSpace(raw.ID),
		Name:             strings.TrimSpace(raw.Name),
		Class:            class,
		Capacity:         raw.Capacity,
		RangeKm:          raw.RangeKm,
		SpeedKmh:         raw.SpeedKmh,
		PricePerHour:     raw.PricePerHour,
		CO2PerHour:       raw.CO2PerHour,
		CO2OffsetPerHour: raw.CO2OffsetPerHour,
	}

	// Operational ceilings only apply to helicopters.
	if class == domain.VehicleClassRotary {
		a.MaxFlightTimeMinutes = raw.MaxFlightTimeMinutes
		a.MaxDistanceKm = raw.MaxDistanceKm
	}

	if a.Name == "" {
		a.Name = a.ID
	}

	if err := a.Validate(); err != nil {
		return domain.AircraftCategory{}, err
	}
	return a, nil
}

// normalizeAirport converts a directory row to a domain Airport.
func normalizeAirport(raw airportJSON) (domain.Airport, error) {
	code := strings.ToUpper(strings.TrimSpace(raw.Code))
	if !airportCodeRegex.MatchString(code) {
		return domain.Airport{}, fmt.Errorf("airport code must be 3 letters, got %q", raw.Code)
	}
	if raw.Lat < -90 || raw.Lat > 90 || raw.Lng < -180 || raw.Lng > 180 {
		return domain.Airport{}, fmt.Errorf("airport %s has out of range coordinates", code)
	}

	return domain.Airport{
		Code:     code,
		Name:     strings.TrimSpace(raw.Name),
		City:     strings.TrimSpace(raw.City),
		Country:  strings.ToUpper(strings.TrimSpace(raw.Country)),
		Location: domain.Coordinates{Lat: raw.Lat, Lng: raw.Lng},
	}, nil
}

func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.DefaultCurrency
	}
	return code
}
