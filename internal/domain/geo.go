package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for all great-circle distances.
const EarthRadiusKm = 6371.0

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HaversineKM returns the great-circle distance between two points in kilometers.
// The same formula backs the route preview, so quotes and previews always agree.
func HaversineKM(a, b Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Airport is a departure or arrival point in the airport directory.
type Airport struct {
	// Code is the IATA airport code (e.g., "LBG")
	Code string `json:"code"`

	// Name is the full airport name
	Name string `json:"name"`

	// City is the served city
	City string `json:"city"`

	// Country is the ISO 3166-1 alpha-2 country code
	Country string `json:"country"`

	// Location holds the airport coordinates
	Location Coordinates `json:"location"`
}

// AirportDirectory resolves airport codes to coordinates.
type AirportDirectory interface {
	// Lookup returns the airport with the given IATA code (case-insensitive).
	Lookup(code string) (Airport, bool)
}
