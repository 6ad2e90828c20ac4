package usecase

import (
	"math"
	"sort"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// minBillableHours is the billing floor applied to every flight.
const minBillableHours = 1.0

// RankCandidates prices and orders the catalog categories able to serve a route.
//
// Steps:
//   - Filter: categories of the other vehicle class are ignored, categories seating fewer
//     than route.Passengers are dropped, and rotary categories are dropped when the
//     distance exceeds MaxDistanceKm (a ceiling <= 0 means none).
//   - Price: FlightHours = max(1, distance / speed), Price = round-half-up(FlightHours × PricePerHour).
//     Fixed-wing categories get StopsRequired = ceil(distance / range) - 1 when the distance exceeds
//     the range. Rotary categories over MaxFlightTimeMinutes become IneligibleCandidate.
//   - Sort (stable): eligible first by (StopsRequired, Price), then ineligible by FlightHours.
//
// An empty result is valid and never an error. The function is pure and does NOT mutate the catalog.
func RankCandidates(catalog []domain.AircraftCategory, route domain.RouteRequest) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(catalog))

	for _, a := range catalog {
		if !isEligible(a, route) {
			continue
		}
		candidates = append(candidates, priceCandidate(a, route.DistanceKm))
	}

	sortCandidates(candidates)
	return candidates
}

// isEligible applies the hard filters that remove a category from the list entirely.
func isEligible(a domain.AircraftCategory, route domain.RouteRequest) bool {
	if a.Class != route.VehicleClass {
		return false
	}
	if a.Capacity < route.Passengers {
		return false
	}
	if a.Class == domain.VehicleClassRotary && a.MaxDistanceKm > 0 && route.DistanceKm > float64(a.MaxDistanceKm) {
		return false
	}
	return true
}

// priceCandidate builds the candidate for a category that passed the filters.
// The rotary time ceiling is evaluated independently of the distance filter.
func priceCandidate(a domain.AircraftCategory, distanceKm float64) domain.Candidate {
	hours := FlightHours(distanceKm, a.SpeedKmh)

	if a.Class == domain.VehicleClassRotary && a.MaxFlightTimeMinutes > 0 && hours*60 > float64(a.MaxFlightTimeMinutes) {
		return domain.IneligibleCandidate{
			Aircraft:    a,
			FlightHours: hours,
			Reason:      domain.ReasonExceedsMaxFlightTime,
		}
	}

	stops := 0
	if a.Class == domain.VehicleClassFixedWing {
		stops = StopsRequired(distanceKm, a.RangeKm)
	}

	return domain.EligibleCandidate{
		Aircraft:      a,
		FlightHours:   hours,
		Price:         roundHalfUp(hours * a.PricePerHour),
		StopsRequired: stops,
	}
}

// FlightHours returns the billable flight time, floored at one hour.
func FlightHours(distanceKm float64, speedKmh int) float64 {
	if speedKmh <= 0 {
		return minBillableHours
	}
	return math.Max(minBillableHours, distanceKm/float64(speedKmh))
}

// StopsRequired returns the number of refuelling stops a fixed-wing aircraft needs.
// A range <= 0 is treated as unlimited.
func StopsRequired(distanceKm float64, rangeKm int) int {
	if rangeKm <= 0 || distanceKm <= float64(rangeKm) {
		return 0
	}
	return int(math.Ceil(distanceKm/float64(rangeKm))) - 1
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// sortCandidates orders candidates in place; equal keys keep catalog order.
func sortCandidates(candidates []domain.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ei, iEligible := candidates[i].(domain.EligibleCandidate)
		ej, jEligible := candidates[j].(domain.EligibleCandidate)

		switch {
		case iEligible && !jEligible:
			return true
		case !iEligible && jEligible:
			return false
		case iEligible && jEligible:
			if ei.StopsRequired != ej.StopsRequired {
				return ei.StopsRequired < ej.StopsRequired
			}
			return ei.Price < ej.Price
		default:
			return candidates[i].Hours() < candidates[j].Hours()
		}
	})
}
