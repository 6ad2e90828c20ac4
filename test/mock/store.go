// Package mock provides test doubles for the charter booking service.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, recorded calls).
package mock

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/infrastructure/timeutil"
)

// BookingStore is an in-memory implementation of domain.BookingStore.
// It assigns sequential ids, stamps records with its clock and enforces
// idempotency key uniqueness like the PostgreSQL schema does.
type BookingStore struct {
	clock timeutil.Clock

	bookingErr      error
	notificationErr error
	delay           time.Duration

	mu            sync.Mutex
	bookings      []domain.BookingRecord
	notifications []domain.NotificationRecord
	keys          map[string]string
	identities    []*domain.Identity
	seq           int
}

// NewBookingStore creates an empty store. A nil clock uses the system time.
func NewBookingStore(clock timeutil.Clock) *BookingStore {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &BookingStore{
		clock: clock,
		keys:  make(map[string]string),
	}
}

// WithBookingError configures InsertBooking to fail with err.
func (s *BookingStore) WithBookingError(err error) *BookingStore {
	s.bookingErr = err
	return s
}

// WithNotificationError configures InsertNotification to fail with err.
func (s *BookingStore) WithNotificationError(err error) *BookingStore {
	s.notificationErr = err
	return s
}

// WithDelay configures both writes to wait d before completing.
// This is useful for testing timeout behavior.
func (s *BookingStore) WithDelay(d time.Duration) *BookingStore {
	s.delay = d
	return s
}

func (s *BookingStore) wait(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return ctx.Err()
}

// InsertBooking implements domain.BookingStore.InsertBooking.
func (s *BookingStore) InsertBooking(ctx context.Context, rec domain.BookingRecord) (domain.BookingRecord, error) {
	if err := s.wait(ctx); err != nil {
		return domain.BookingRecord{}, domain.NewPersistenceError(domain.TableBookings, err)
	}
	if s.bookingErr != nil {
		return domain.BookingRecord{}, s.bookingErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.IdempotencyKey != nil {
		if existing, ok := s.keys[*rec.IdempotencyKey]; ok {
			return domain.BookingRecord{}, fmt.Errorf("%w: key %q already used by booking %s",
				domain.ErrDuplicateSubmission, *rec.IdempotencyKey, existing)
		}
	}

	s.seq++
	now := s.clock.Now()
	rec.ID = "booking-" + strconv.Itoa(s.seq)
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if rec.IdempotencyKey != nil {
		s.keys[*rec.IdempotencyKey] = rec.ID
	}
	if id, ok := domain.IdentityFromContext(ctx); ok {
		s.identities = append(s.identities, id)
	}
	s.bookings = append(s.bookings, rec)
	return rec, nil
}

// InsertNotification implements domain.BookingStore.InsertNotification.
func (s *BookingStore) InsertNotification(ctx context.Context, n domain.NotificationRecord) (domain.NotificationRecord, error) {
	if err := s.wait(ctx); err != nil {
		return domain.NotificationRecord{}, domain.NewPersistenceError(domain.TableNotifications, err)
	}
	if s.notificationErr != nil {
		return domain.NotificationRecord{}, s.notificationErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	n.ID = "notification-" + strconv.Itoa(s.seq)
	n.CreatedAt = s.clock.Now()
	s.notifications = append(s.notifications, n)
	return n, nil
}

// Bookings returns a copy of the stored bookings in insertion order.
func (s *BookingStore) Bookings() []domain.BookingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.BookingRecord(nil), s.bookings...)
}

// Notifications returns a copy of the stored notifications in insertion order.
func (s *BookingStore) Notifications() []domain.NotificationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.NotificationRecord(nil), s.notifications...)
}

// Identities returns the identities that were present on booking writes.
func (s *BookingStore) Identities() []*domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Identity(nil), s.identities...)
}

// Ensure BookingStore implements domain.BookingStore at compile time.
var _ domain.BookingStore = (*BookingStore)(nil)

// EventPublisher records published booking events.
type EventPublisher struct {
	err error

	mu     sync.Mutex
	events []domain.BookingEvent
}

// NewEventPublisher creates a publisher that accepts every event.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

// WithError configures the publisher to reject every event with err.
func (p *EventPublisher) WithError(err error) *EventPublisher {
	p.err = err
	return p
}

// PublishBookingEvent implements domain.EventPublisher.
func (p *EventPublisher) PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.err != nil {
		return p.err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of the published events.
func (p *EventPublisher) Events() []domain.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.BookingEvent(nil), p.events...)
}

// Ensure EventPublisher implements domain.EventPublisher at compile time.
var _ domain.EventPublisher = (*EventPublisher)(nil)
