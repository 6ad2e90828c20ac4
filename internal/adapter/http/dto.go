package http

import (
	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// Candidate statuses on the wire.
const (
	CandidateStatusEligible   = "eligible"
	CandidateStatusIneligible = "ineligible"
)

// AirportDTO is an airport in API responses.
type AirportDTO struct {
	Code    string  `json:"code" example:"LBG"`
	Name    string  `json:"name" example:"Paris Le Bourget"`
	City    string  `json:"city" example:"Paris"`
	Country string  `json:"country" example:"FR"`
	Lat     float64 `json:"lat" example:"48.9694"`
	Lng     float64 `json:"lng" example:"2.4414"`
}

// CandidateDTO is one ranked aircraft option.
// Price and StopsRequired are only present for eligible candidates; Reason only for ineligible ones.
type CandidateDTO struct {
	Aircraft    domain.AircraftCategory `json:"aircraft"`
	Status      string                  `json:"status" example:"eligible"`
	Selectable  bool                    `json:"selectable" example:"true"`
	FlightHours float64                 `json:"flightHours" example:"1.1"`

	Price         *int64  `json:"price,omitempty" example:"25412"`
	StopsRequired *int    `json:"stopsRequired,omitempty" example:"0"`
	CO2Tonnes     float64 `json:"co2Tonnes" example:"1.9"`
	CO2OffsetCost float64 `json:"co2OffsetCost" example:"47.5"`

	Reason string `json:"reason,omitempty" example:""`
}

// QuoteResponseDTO is the response of POST /api/v1/quotes.
type QuoteResponseDTO struct {
	Origin       AirportDTO     `json:"origin"`
	Destination  AirportDTO     `json:"destination"`
	DistanceKm   float64        `json:"distanceKm" example:"686.3"`
	Passengers   int            `json:"passengers" example:"4"`
	VehicleClass string         `json:"vehicleClass" example:"fixed-wing"`
	Currency     string         `json:"currency" example:"EUR"`
	Candidates   []CandidateDTO `json:"candidates"`

	// SuggestedClass is set when the other vehicle class can serve the route and this one cannot
	SuggestedClass *string `json:"suggestedClass,omitempty" example:"fixed-wing"`
}

// AircraftListDTO is the response of GET /api/v1/aircraft.
type AircraftListDTO struct {
	Aircraft []domain.AircraftCategory `json:"aircraft"`
	Total    int                       `json:"total" example:"8"`
}

// NotificationDTO reports the best-effort notification write.
type NotificationDTO struct {
	Status string `json:"status" example:"delivered"`
}

// BookingResponseDTO is the response of POST /api/v1/bookings.
type BookingResponseDTO struct {
	Booking      domain.BookingRecord `json:"booking"`
	Notification NotificationDTO      `json:"notification"`
}

// CheckoutSessionResponseDTO is the response of POST /api/v1/checkout-sessions.
type CheckoutSessionResponseDTO struct {
	URL string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_a1"`
}
