package domain

import (
	"fmt"
	"time"
)

// Identity is the authenticated user acting on a request.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
}

// RequestContext carries the caller's identity and connected wallet explicitly.
// A nil Identity means the request is anonymous, which is allowed for bookings.
type RequestContext struct {
	Identity *Identity
	Wallet   *string
}

// Authenticated reports whether the request carries a user identity.
func (r RequestContext) Authenticated() bool {
	return r.Identity != nil && r.Identity.UserID != ""
}

// NotificationKindBookingCreated is the kind of the notification written after a booking.
const NotificationKindBookingCreated = "booking_created"

// NotificationRecord is the denormalized row that feeds the user's notification inbox.
type NotificationRecord struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"user_id"`
	BookingID     string    `json:"booking_id"`
	Kind          string    `json:"kind"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Route         string    `json:"route"`
	DepartureDate string    `json:"departure_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewBookingNotification derives the notification row for a freshly stored booking.
func NewBookingNotification(userID string, rec BookingRecord, now time.Time) NotificationRecord {
	route := rec.Route()
	return NotificationRecord{
		UserID:        userID,
		BookingID:     rec.ID,
		Kind:          NotificationKindBookingCreated,
		Title:         "Booking request received",
		Message:       fmt.Sprintf("Your charter %s on %s for %d passenger(s) is pending confirmation.", route, rec.DepartureDate, rec.Passengers),
		Route:         route,
		DepartureDate: rec.DepartureDate,
		CreatedAt:     now,
	}
}

// NotificationStatus describes what happened to the best-effort notification write.
type NotificationStatus string

// Notification write outcomes.
const (
	NotificationDelivered NotificationStatus = "delivered"
	NotificationSkipped   NotificationStatus = "skipped"
	NotificationFailed    NotificationStatus = "failed"
)

// NotificationOutcome reports the secondary write separately from the booking itself.
type NotificationOutcome struct {
	Status NotificationStatus `json:"status"`

	// Err is set when Status is NotificationFailed. It is kept for diagnostics only.
	Err error `json:"-"`
}

// SubmitResult is the outcome of a successful booking submission.
type SubmitResult struct {
	Record       BookingRecord
	Notification NotificationOutcome
}
