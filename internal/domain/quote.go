package domain

import "strings"

// QuoteRequest asks for ranked aircraft options between two airports.
type QuoteRequest struct {
	// Origin is the departure airport IATA code
	Origin string

	// Destination is the arrival airport IATA code
	Destination string

	// Passengers is the number of travelling passengers
	Passengers int

	// VehicleClass selects jets or helicopters
	VehicleClass VehicleClass
}

// Normalize upper-cases and trims the airport codes.
func (q *QuoteRequest) Normalize() {
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))
}

// Validate checks the quote request and accumulates all field errors.
func (q QuoteRequest) Validate() error {
	errs := &ValidationErrors{}

	if q.Origin == "" {
		errs.Add("origin", "origin airport is required")
	}
	if q.Destination == "" {
		errs.Add("destination", "destination airport is required")
	}
	if q.Origin != "" && q.Origin == q.Destination {
		errs.Add("destination", "destination must be different from origin")
	}
	if q.Passengers < 1 {
		errs.Add("passengers", "at least 1 passenger is required")
	}
	if !q.VehicleClass.IsValid() {
		errs.Add("vehicleClass", "vehicle class must be one of: fixed-wing, rotary")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Quote is the ranked result for a route.
type Quote struct {
	// Origin is the resolved departure airport
	Origin Airport

	// Destination is the resolved arrival airport
	Destination Airport

	// DistanceKm is the great-circle distance between the two airports
	DistanceKm float64

	// Route is the request the candidates were ranked for
	Route RouteRequest

	// Candidates are ordered eligible-first, see usecase.RankCandidates
	Candidates []Candidate

	// Currency is the currency all prices are expressed in
	Currency string

	// SuggestedClass is set when the requested class offers nothing bookable
	// and the other class does.
	SuggestedClass *VehicleClass
}
