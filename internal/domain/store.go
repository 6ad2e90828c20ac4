package domain

import "context"

// Datastore table names.
const (
	TableBookings      = "bookings"
	TableNotifications = "booking_notifications"
)

//go:generate mockgen -source=store.go -destination=mock_store.go -package=domain

// BookingStore persists bookings and their notification rows.
// Implementations assign ids and timestamps and may read the acting identity from ctx
// (see ContextWithIdentity).
type BookingStore interface {
	// InsertBooking stores the canonical booking and returns it as stored.
	InsertBooking(ctx context.Context, rec BookingRecord) (BookingRecord, error)

	// InsertNotification stores a notification row referencing a booking.
	InsertNotification(ctx context.Context, n NotificationRecord) (NotificationRecord, error)
}

// BookingEvent is published after a booking has been stored.
type BookingEvent struct {
	Type      string        `json:"type"`
	BookingID string        `json:"booking_id"`
	UserID    *string       `json:"user_id,omitempty"`
	Booking   BookingRecord `json:"booking"`
}

// EventTypeBookingCreated is the routing key and type of BookingEvent.
const EventTypeBookingCreated = "booking.created"

// EventPublisher delivers booking events to downstream consumers.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

type identityCtxKey struct{}

// ContextWithIdentity returns a context carrying the acting user's identity.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	if id == nil {
		return ctx
	}
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext extracts the acting user's identity, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(*Identity)
	return id, ok && id != nil
}
