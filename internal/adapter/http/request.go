// Package http provides the HTTP handler layer for the charter booking API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"regexp"
	"strings"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// QuoteRequest represents the request body for an aircraft quote.
type QuoteRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "LBG")
	Origin string `json:"origin" example:"LBG"`

	// Destination is the IATA code of the arrival airport (e.g., "NCE")
	Destination string `json:"destination" example:"NCE"`

	// Passengers is the number of travelling passengers
	Passengers int `json:"passengers" example:"4"`

	// VehicleClass is fixed-wing or rotary; jet and helicopter are accepted aliases
	VehicleClass string `json:"vehicleClass" example:"fixed-wing"`
}

// ContactRequest holds the customer's contact details.
type ContactRequest struct {
	Name    string  `json:"name" example:"Ada Lovelace"`
	Email   string  `json:"email" example:"ada@example.com"`
	Phone   string  `json:"phone" example:"+33 1 23 45 67 89"`
	Company *string `json:"company,omitempty"`
}

// BookingRequest represents the request body of a booking submission.
// It mirrors the state of the booking wizard at confirmation time.
type BookingRequest struct {
	Origin        string `json:"origin" example:"LBG"`
	Destination   string `json:"destination" example:"NCE"`
	DepartureDate string `json:"departureDate" example:"2026-07-14"`

	// DepartureTime is the local departure time in HH:MM format (optional)
	DepartureTime string `json:"departureTime,omitempty" example:"09:30"`

	Passengers int `json:"passengers" example:"4"`
	Luggage    int `json:"luggage" example:"4"`
	Pets       int `json:"pets" example:"0"`

	AircraftCategoryID string   `json:"aircraftCategoryId" example:"midsize-jet"`
	AviationServices   []string `json:"aviationServices,omitempty"`
	LuxuryServices     []string `json:"luxuryServices,omitempty"`

	// CarbonOption is none or full; empty means none
	CarbonOption  string  `json:"carbonOption,omitempty" example:"full"`
	WalletAddress *string `json:"walletAddress,omitempty"`

	TotalPrice float64 `json:"totalPrice" example:"25412"`
	Currency   string  `json:"currency,omitempty" example:"EUR"`

	// PaymentMethod is bank, card or crypto
	PaymentMethod string `json:"paymentMethod" example:"card"`

	Contact ContactRequest `json:"contact"`

	// DiscountPercent is the NFT holder discount already applied to TotalPrice
	DiscountPercent float64 `json:"discountPercent" example:"0"`
}

// CheckoutSessionRequest represents the request body for a hosted payment session.
type CheckoutSessionRequest struct {
	PriceID    string            `json:"priceId" example:"price_1PxYz"`
	CustomerID string            `json:"customerId,omitempty"`
	SuccessURL string            `json:"successUrl" example:"https://app.example.com/booking/success"`
	CancelURL  string            `json:"cancelUrl" example:"https://app.example.com/booking/cancel"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

var airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks the transport-level shape of the quote request.
// Route semantics (same airport, passengers) are checked by the use case.
func (r *QuoteRequest) Validate() error {
	errs := &domain.ValidationErrors{}

	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))

	if r.Origin != "" && !airportCodePattern.MatchString(r.Origin) {
		errs.Add("origin", "origin must be a valid 3-letter IATA airport code")
	}
	if r.Destination != "" && !airportCodePattern.MatchString(r.Destination) {
		errs.Add("destination", "destination must be a valid 3-letter IATA airport code")
	}

	if r.VehicleClass == "" {
		errs.Add("vehicleClass", "vehicleClass is required")
	} else if _, err := domain.ParseVehicleClass(r.VehicleClass); err != nil {
		errs.Add("vehicleClass", "vehicleClass must be one of: fixed-wing, rotary")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
