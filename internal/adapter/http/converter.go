package http

import (
	"math"
	"strings"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// ToDomainQuoteRequest converts a validated QuoteRequest to domain.QuoteRequest.
func ToDomainQuoteRequest(req *QuoteRequest) domain.QuoteRequest {
	class, _ := domain.ParseVehicleClass(req.VehicleClass)
	q := domain.QuoteRequest{
		Origin:       req.Origin,
		Destination:  req.Destination,
		Passengers:   req.Passengers,
		VehicleClass: class,
	}
	q.Normalize()
	return q
}

// ToBookingSubmission converts a BookingRequest to domain.BookingSubmission.
// idempotencyKey is the Idempotency-Key header value; empty means none.
func ToBookingSubmission(req *BookingRequest, idempotencyKey string) domain.BookingSubmission {
	sub := domain.BookingSubmission{
		Origin:             req.Origin,
		Destination:        req.Destination,
		DepartureDate:      req.DepartureDate,
		DepartureTime:      req.DepartureTime,
		Passengers:         req.Passengers,
		Luggage:            req.Luggage,
		Pets:               req.Pets,
		AircraftCategoryID: req.AircraftCategoryID,
		AviationServices:   req.AviationServices,
		LuxuryServices:     req.LuxuryServices,
		CarbonOption:       domain.CarbonOption(strings.ToLower(req.CarbonOption)),
		WalletAddress:      req.WalletAddress,
		TotalPrice:         req.TotalPrice,
		Currency:           req.Currency,
		PaymentMethod:      domain.PaymentMethod(strings.ToLower(req.PaymentMethod)),
		Contact: domain.Contact{
			Name:    req.Contact.Name,
			Email:   req.Contact.Email,
			Phone:   req.Contact.Phone,
			Company: req.Contact.Company,
		},
		DiscountPercent: req.DiscountPercent,
	}

	if key := strings.TrimSpace(idempotencyKey); key != "" {
		sub.IdempotencyKey = &key
	}

	return sub
}

// ToDomainCheckoutRequest converts a CheckoutSessionRequest to domain.CheckoutSessionRequest.
func ToDomainCheckoutRequest(req *CheckoutSessionRequest) domain.CheckoutSessionRequest {
	return domain.CheckoutSessionRequest{
		PriceID:    strings.TrimSpace(req.PriceID),
		CustomerID: strings.TrimSpace(req.CustomerID),
		SuccessURL: strings.TrimSpace(req.SuccessURL),
		CancelURL:  strings.TrimSpace(req.CancelURL),
		Metadata:   req.Metadata,
	}
}

// ToAirportDTO converts a domain.Airport to AirportDTO.
func ToAirportDTO(a domain.Airport) AirportDTO {
	return AirportDTO{
		Code:    a.Code,
		Name:    a.Name,
		City:    a.City,
		Country: a.Country,
		Lat:     a.Location.Lat,
		Lng:     a.Location.Lng,
	}
}

// ToCandidateDTO converts a ranked candidate to its wire form.
func ToCandidateDTO(c domain.Candidate) CandidateDTO {
	aircraft := c.Category()
	hours := c.Hours()

	dto := CandidateDTO{
		Aircraft:      aircraft,
		Selectable:    c.Selectable(),
		FlightHours:   roundTo(hours, 2),
		CO2Tonnes:     roundTo(hours*aircraft.CO2PerHour, 2),
		CO2OffsetCost: roundTo(hours*aircraft.CO2OffsetPerHour, 2),
	}

	switch v := c.(type) {
	case domain.EligibleCandidate:
		price := v.Price
		stops := v.StopsRequired
		dto.Status = CandidateStatusEligible
		dto.Price = &price
		dto.StopsRequired = &stops
	case domain.IneligibleCandidate:
		dto.Status = CandidateStatusIneligible
		dto.Reason = string(v.Reason)
	}

	return dto
}

// ToQuoteResponse converts a domain.Quote to QuoteResponseDTO.
func ToQuoteResponse(q *domain.Quote) QuoteResponseDTO {
	candidates := make([]CandidateDTO, 0, len(q.Candidates))
	for _, c := range q.Candidates {
		candidates = append(candidates, ToCandidateDTO(c))
	}

	resp := QuoteResponseDTO{
		Origin:       ToAirportDTO(q.Origin),
		Destination:  ToAirportDTO(q.Destination),
		DistanceKm:   q.DistanceKm,
		Passengers:   q.Route.Passengers,
		VehicleClass: string(q.Route.VehicleClass),
		Currency:     q.Currency,
		Candidates:   candidates,
	}

	if q.SuggestedClass != nil {
		s := string(*q.SuggestedClass)
		resp.SuggestedClass = &s
	}

	return resp
}

// ToBookingResponse converts a domain.SubmitResult to BookingResponseDTO.
func ToBookingResponse(res *domain.SubmitResult) BookingResponseDTO {
	return BookingResponseDTO{
		Booking:      res.Record,
		Notification: NotificationDTO{Status: string(res.Notification.Status)},
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
