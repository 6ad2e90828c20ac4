package domain

// Candidate is a priced or rejected aircraft option for a route.
// It is either an EligibleCandidate or an IneligibleCandidate; an ineligible
// candidate never carries a price.
type Candidate interface {
	// Category returns the aircraft category this candidate was built from.
	Category() AircraftCategory

	// Hours returns the billable flight time in hours.
	Hours() float64

	// Selectable reports whether the user may pick this candidate as a direct booking.
	Selectable() bool

	isCandidate()
}

// EligibleCandidate is an aircraft that can fly the route, possibly with fuel stops.
type EligibleCandidate struct {
	// Aircraft is the category being offered
	Aircraft AircraftCategory

	// FlightHours is max(1, distance / speed)
	FlightHours float64

	// Price is the rounded charter price in whole currency units
	Price int64

	// StopsRequired is the number of refuelling stops (fixed-wing only)
	StopsRequired int
}

// Category implements Candidate.
func (c EligibleCandidate) Category() AircraftCategory { return c.Aircraft }

// Hours implements Candidate.
func (c EligibleCandidate) Hours() float64 { return c.FlightHours }

// Direct reports whether the route can be flown without a fuel stop.
func (c EligibleCandidate) Direct() bool { return c.StopsRequired == 0 }

// Selectable implements Candidate. Only direct flights are bookable; candidates
// needing stops are shown to the user but cannot be selected.
func (c EligibleCandidate) Selectable() bool { return c.Direct() }

func (EligibleCandidate) isCandidate() {}

// IneligibilityReason explains why a candidate was rejected while still being listed.
type IneligibilityReason string

// Known ineligibility reasons.
const (
	// ReasonExceedsMaxFlightTime marks a rotary aircraft whose flight time is over its ceiling.
	ReasonExceedsMaxFlightTime IneligibilityReason = "exceeds_max_flight_time"
)

// IneligibleCandidate is an aircraft shown disabled because it violates a hard ceiling.
type IneligibleCandidate struct {
	// Aircraft is the rejected category
	Aircraft AircraftCategory

	// FlightHours is the flight time that was evaluated against the ceiling
	FlightHours float64

	// Reason describes the violated ceiling
	Reason IneligibilityReason
}

// Category implements Candidate.
func (c IneligibleCandidate) Category() AircraftCategory { return c.Aircraft }

// Hours implements Candidate.
func (c IneligibleCandidate) Hours() float64 { return c.FlightHours }

// Selectable implements Candidate.
func (IneligibleCandidate) Selectable() bool { return false }

func (IneligibleCandidate) isCandidate() {}

// HasSelectable reports whether at least one candidate can be booked directly.
func HasSelectable(candidates []Candidate) bool {
	for _, c := range candidates {
		if c.Selectable() {
			return true
		}
	}
	return false
}
