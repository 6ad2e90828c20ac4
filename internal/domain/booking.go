package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// CarbonOption is the per-booking CO2 offset choice.
type CarbonOption string

// Available carbon offset options.
const (
	CarbonOptionNone CarbonOption = "none"
	CarbonOptionFull CarbonOption = "full"
)

// IsValid checks if the carbon option is a known value.
func (c CarbonOption) IsValid() bool {
	return c == CarbonOptionNone || c == CarbonOptionFull
}

// PaymentMethod is how the customer intends to pay.
type PaymentMethod string

// Available payment methods.
const (
	PaymentMethodBank   PaymentMethod = "bank"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

// IsValid checks if the payment method is a known value.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentMethodBank, PaymentMethodCard, PaymentMethodCrypto:
		return true
	default:
		return false
	}
}

// BookingStatus is the lifecycle state of a persisted booking.
// This service only ever creates pending bookings.
type BookingStatus string

// BookingStatusPending is the initial status of every booking.
const BookingStatusPending BookingStatus = "pending"

// DefaultCurrency is used when a submission carries no currency code.
const DefaultCurrency = "USD"

// Contact holds the customer's contact details.
type Contact struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Company *string `json:"company,omitempty"`
}

// BookingSubmission is a snapshot of the booking wizard state.
// Optional values are pointers so that "absent" and "empty" stay distinct.
type BookingSubmission struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination"`

	// DepartureDate is a calendar date (YYYY-MM-DD) or an RFC3339 timestamp
	DepartureDate string `json:"departureDate"`

	// DepartureTime is the requested local departure time (HH:MM)
	DepartureTime string `json:"departureTime"`

	Passengers int `json:"passengers"`
	Luggage    int `json:"luggage"`
	Pets       int `json:"pets"`

	// AircraftCategoryID references the category picked from the ranked candidates
	AircraftCategoryID string `json:"aircraftCategoryId"`

	// AviationServices are operational add-ons (catering, ground transport, ...)
	AviationServices []string `json:"aviationServices,omitempty"`

	// LuxuryServices are lifestyle add-ons (concierge, yacht transfer, ...)
	LuxuryServices []string `json:"luxuryServices,omitempty"`

	CarbonOption CarbonOption `json:"carbonOption"`

	// WalletAddress is the customer's wallet; used for the carbon certificate when CarbonOption is full
	WalletAddress *string `json:"walletAddress,omitempty"`

	TotalPrice    float64       `json:"totalPrice"`
	Currency      string        `json:"currency"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`

	Contact Contact `json:"contact"`

	// DiscountPercent is the NFT holder discount that was applied to TotalPrice
	DiscountPercent float64 `json:"discountPercent"`

	// IdempotencyKey is a client token identifying one submission attempt
	IdempotencyKey *string `json:"-"`
}

// BookingRecord is the flat, storage-ready form of a booking.
// It is created once and never mutated by this service afterwards.
type BookingRecord struct {
	ID                 string        `json:"id"`
	UserID             *string       `json:"user_id"`
	OriginAirport      string        `json:"origin_airport"`
	DestinationAirport string        `json:"destination_airport"`
	DepartureDate      string        `json:"departure_date"`
	DepartureTime      *string       `json:"departure_time"`
	Passengers         int           `json:"passengers"`
	Luggage            int           `json:"luggage"`
	Pets               int           `json:"pets"`
	AircraftCategory   string        `json:"aircraft_category"`
	AviationServices   []string      `json:"aviation_services"`
	LuxuryServices     []string      `json:"luxury_services"`
	CarbonOption       CarbonOption  `json:"carbon_option"`
	CarbonNFTWallet    *string       `json:"carbon_nft_wallet,omitempty"`
	TotalPrice         float64       `json:"total_price"`
	Currency           string        `json:"currency"`
	PaymentMethod      PaymentMethod `json:"payment_method"`
	ContactName        string        `json:"contact_name"`
	ContactEmail       string        `json:"contact_email"`
	ContactPhone       string        `json:"contact_phone"`
	ContactCompany     *string       `json:"contact_company"`
	WalletAddress      *string       `json:"wallet_address"`
	DiscountPercent    float64       `json:"discount_percent"`
	NFTDiscountApplied bool          `json:"nft_discount_applied"`
	Status             BookingStatus `json:"status"`
	IdempotencyKey     *string       `json:"idempotency_key,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// Route renders the airport pair as ORIGIN-DESTINATION, e.g. LBG-NCE.
func (r BookingRecord) Route() string {
	return r.OriginAirport + "-" + r.DestinationAirport
}

var (
	// emailRegex matches the local@domain.tld shape.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// walletRegex matches an EVM address: 0x followed by 40 hex characters.
	walletRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

	timeOfDayRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// isValidTimeOfDay reports whether v is HH:MM with hours 00-23 and minutes 00-59.
func isValidTimeOfDay(v string) bool {
	if !timeOfDayRegex.MatchString(v) {
		return false
	}

	var hour, minute int
	if _, err := fmt.Sscanf(v, "%02d:%02d", &hour, &minute); err != nil {
		return false
	}

	return hour <= 23 && minute <= 59
}

// Validate checks the submission against the booking rules.
// aircraft is the category resolved from AircraftCategoryID, or nil when none could be resolved.
// It returns nil or a *ValidationErrors holding every violation.
func (s *BookingSubmission) Validate(aircraft *AircraftCategory) error {
	errs := &ValidationErrors{}

	if strings.TrimSpace(s.Origin) == "" {
		errs.Add("origin", "origin airport is required")
	}
	if strings.TrimSpace(s.Destination) == "" {
		errs.Add("destination", "destination airport is required")
	}

	if strings.TrimSpace(s.DepartureDate) == "" {
		errs.Add("departureDate", "departure date is required")
	} else if _, err := NormalizeDepartureDate(s.DepartureDate); err != nil {
		errs.Add("departureDate", "departure date must be a valid date (YYYY-MM-DD)")
	}

	if t := strings.TrimSpace(s.DepartureTime); t != "" && !isValidTimeOfDay(t) {
		errs.Add("departureTime", "departureTime must be in HH:MM format with valid hours (00-23) and minutes (00-59)")
	}

	switch {
	case strings.TrimSpace(s.AircraftCategoryID) == "":
		errs.Add("aircraftCategoryId", "an aircraft category must be selected")
	case aircraft == nil:
		errs.Add("aircraftCategoryId", fmt.Sprintf("aircraft category %q is not available", s.AircraftCategoryID))
	}

	if strings.TrimSpace(s.Contact.Name) == "" {
		errs.Add("contact.name", "contact name is required")
	}

	email := strings.TrimSpace(s.Contact.Email)
	if email == "" {
		errs.Add("contact.email", "contact email is required")
	} else if !emailRegex.MatchString(email) {
		errs.Add("contact.email", "contact email must be a valid email address")
	}

	if strings.TrimSpace(s.Contact.Phone) == "" {
		errs.Add("contact.phone", "contact phone is required")
	}

	if s.CarbonOption == CarbonOptionFull {
		if wallet := trimmedOrNil(s.WalletAddress); wallet != nil && !walletRegex.MatchString(*wallet) {
			errs.Add("walletAddress", "wallet address must be 0x followed by 40 hex characters")
		}
	}

	if s.Passengers < 1 {
		errs.Add("passengers", "at least 1 passenger is required")
	} else if aircraft != nil && s.Passengers > aircraft.Capacity {
		errs.Add("passengers", fmt.Sprintf("the selected aircraft seats at most %d passengers", aircraft.Capacity))
	}

	if s.Luggage < 0 {
		errs.Add("luggage", "luggage cannot be negative")
	}
	if s.Pets < 0 {
		errs.Add("pets", "pets cannot be negative")
	}

	if s.CarbonOption != "" && !s.CarbonOption.IsValid() {
		errs.Add("carbonOption", "carbonOption must be one of: none, full")
	}

	if s.PaymentMethod == "" {
		errs.Add("paymentMethod", "paymentMethod is required")
	} else if !s.PaymentMethod.IsValid() {
		errs.Add("paymentMethod", "paymentMethod must be one of: bank, card, crypto")
	}

	if s.TotalPrice < 0 {
		errs.Add("totalPrice", "totalPrice cannot be negative")
	}
	if s.DiscountPercent < 0 || s.DiscountPercent > 100 {
		errs.Add("discountPercent", "discountPercent must be between 0 and 100")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ToRecord reshapes the submission into a storage-ready record.
// It is pure: identical input yields an identical record. ID and timestamps are left
// for the datastore to assign.
func (s *BookingSubmission) ToRecord() BookingRecord {
	departureDate, err := NormalizeDepartureDate(s.DepartureDate)
	if err != nil {
		departureDate = strings.TrimSpace(s.DepartureDate)
	}

	rec := BookingRecord{
		OriginAirport:      strings.ToUpper(strings.TrimSpace(s.Origin)),
		DestinationAirport: strings.ToUpper(strings.TrimSpace(s.Destination)),
		DepartureDate:      departureDate,
		DepartureTime:      trimmedOrNil(&s.DepartureTime),
		Passengers:         s.Passengers,
		Luggage:            s.Luggage,
		Pets:               s.Pets,
		AircraftCategory:   strings.TrimSpace(s.AircraftCategoryID),
		AviationServices:   normalizeServices(s.AviationServices),
		LuxuryServices:     normalizeServices(s.LuxuryServices),
		CarbonOption:       s.CarbonOption,
		TotalPrice:         s.TotalPrice,
		Currency:           normalizeCurrency(s.Currency),
		PaymentMethod:      s.PaymentMethod,
		ContactName:        strings.TrimSpace(s.Contact.Name),
		ContactEmail:       strings.TrimSpace(s.Contact.Email),
		ContactPhone:       strings.TrimSpace(s.Contact.Phone),
		ContactCompany:     trimmedOrNil(s.Contact.Company),
		WalletAddress:      trimmedOrNil(s.WalletAddress),
		DiscountPercent:    s.DiscountPercent,
		NFTDiscountApplied: s.DiscountPercent > 0,
		Status:             BookingStatusPending,
		IdempotencyKey:     trimmedOrNil(s.IdempotencyKey),
	}

	if rec.CarbonOption == "" {
		rec.CarbonOption = CarbonOptionNone
	}

	// A wallet connected for other reasons must not end up on the certificate.
	if rec.CarbonOption == CarbonOptionFull {
		rec.CarbonNFTWallet = rec.WalletAddress
	}

	return rec
}

// NormalizeDepartureDate reduces a date or timestamp to a calendar-date string (YYYY-MM-DD).
// Timestamps keep the calendar date of their own offset.
func NormalizeDepartureDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.Format(time.DateOnly), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format(time.DateOnly), nil
	}
	return "", fmt.Errorf("%w: departure date %q is not a date", ErrInvalidRequest, value)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// normalizeServices drops blanks and duplicates while keeping selection order.
func normalizeServices(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}
