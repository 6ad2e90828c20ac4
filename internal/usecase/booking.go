package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/infrastructure/metrics"
	"github.com/charter-booking/charter-booking-service/internal/infrastructure/timeutil"
)

// Default timeout values.
const (
	DefaultSubmitTimeout       = 10 * time.Second
	DefaultNotificationTimeout = 3 * time.Second
	DefaultPublishTimeout      = 3 * time.Second
)

// BookingUseCase defines the interface for booking submission.
type BookingUseCase interface {
	// Submit validates, normalizes and stores a booking request.
	// The notification write and the event publish are best-effort; their failures are
	// reported in the result and never returned as an error.
	Submit(ctx context.Context, rc domain.RequestContext, sub domain.BookingSubmission) (*domain.SubmitResult, error)
}

// BookingConfig contains configuration options for the booking use case.
type BookingConfig struct {
	// SubmitTimeout bounds the primary booking write
	SubmitTimeout time.Duration

	// NotificationTimeout bounds the secondary notification write
	NotificationTimeout time.Duration

	// PublishTimeout bounds the booking event publish
	PublishTimeout time.Duration
}

// DefaultBookingConfig returns the default configuration.
func DefaultBookingConfig() BookingConfig {
	return BookingConfig{
		SubmitTimeout:       DefaultSubmitTimeout,
		NotificationTimeout: DefaultNotificationTimeout,
		PublishTimeout:      DefaultPublishTimeout,
	}
}

// bookingUseCase implements BookingUseCase with sequential writes.
type bookingUseCase struct {
	catalog   domain.AircraftCatalog
	store     domain.BookingStore
	publisher domain.EventPublisher
	clock     timeutil.Clock
	logger    zerolog.Logger
	cfg       BookingConfig
}

// BookingDeps groups the collaborators of the booking use case.
// Publisher and Clock are optional.
type BookingDeps struct {
	Catalog   domain.AircraftCatalog
	Store     domain.BookingStore
	Publisher domain.EventPublisher
	Clock     timeutil.Clock
	Logger    zerolog.Logger
}

// NewBookingUseCase creates a new BookingUseCase.
// If config is nil, default timeout values are used.
func NewBookingUseCase(deps BookingDeps, config *BookingConfig) BookingUseCase {
	cfg := DefaultBookingConfig()
	if config != nil {
		if config.SubmitTimeout > 0 {
			cfg.SubmitTimeout = config.SubmitTimeout
		}
		if config.NotificationTimeout > 0 {
			cfg.NotificationTimeout = config.NotificationTimeout
		}
		if config.PublishTimeout > 0 {
			cfg.PublishTimeout = config.PublishTimeout
		}
	}

	clock := deps.Clock
	if clock == nil {
		clock = timeutil.NewRealClock()
	}

	return &bookingUseCase{
		catalog:   deps.Catalog,
		store:     deps.Store,
		publisher: deps.Publisher,
		clock:     clock,
		logger:    deps.Logger,
		cfg:       cfg,
	}
}

// Submit implements BookingUseCase.Submit.
func (uc *bookingUseCase) Submit(ctx context.Context, rc domain.RequestContext, sub domain.BookingSubmission) (*domain.SubmitResult, error) {
	aircraft := uc.resolveAircraft(sub.AircraftCategoryID)

	// The connected wallet stands in for one the form did not carry and is
	// validated like any other.
	if (sub.WalletAddress == nil || strings.TrimSpace(*sub.WalletAddress) == "") && rc.Wallet != nil {
		sub.WalletAddress = rc.Wallet
	}

	if err := sub.Validate(aircraft); err != nil {
		metrics.BookingsSubmitted.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	rec := sub.ToRecord()
	if rc.Authenticated() {
		userID := rc.Identity.UserID
		rec.UserID = &userID
		ctx = domain.ContextWithIdentity(ctx, rc.Identity)
	}

	stored, err := uc.insertBooking(ctx, rec)
	if err != nil {
		return nil, err
	}

	result := &domain.SubmitResult{
		Record:       stored,
		Notification: uc.writeNotification(ctx, rc, stored),
	}

	uc.publish(ctx, stored)

	uc.logger.Info().
		Str("booking_id", stored.ID).
		Str("route", stored.Route()).
		Str("aircraft_category", stored.AircraftCategory).
		Str("notification", string(result.Notification.Status)).
		Msg("Booking submitted")

	return result, nil
}

// resolveAircraft looks the category up; nil means unknown or not selected.
func (uc *bookingUseCase) resolveAircraft(id string) *domain.AircraftCategory {
	if id == "" {
		return nil
	}
	a, ok := uc.catalog.Get(id)
	if !ok {
		return nil
	}
	return &a
}

// insertBooking performs the primary write under the submit timeout.
func (uc *bookingUseCase) insertBooking(ctx context.Context, rec domain.BookingRecord) (domain.BookingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.SubmitTimeout)
	defer cancel()

	start := time.Now()
	stored, err := uc.store.InsertBooking(ctx, rec)
	metrics.SubmitDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateSubmission):
			metrics.BookingsSubmitted.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return domain.BookingRecord{}, err
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
			metrics.BookingsSubmitted.WithLabelValues(metrics.OutcomeTimeout).Inc()
		default:
			metrics.BookingsSubmitted.WithLabelValues(metrics.OutcomeFailed).Inc()
		}

		uc.logger.Error().Err(err).Str("table", domain.TableBookings).Msg("Booking write failed")

		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			return domain.BookingRecord{}, err
		}
		if ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
			err = errors.Join(err, ctx.Err())
		}
		return domain.BookingRecord{}, domain.NewPersistenceError(domain.TableBookings, err)
	}

	metrics.BookingsSubmitted.WithLabelValues(metrics.OutcomeCreated).Inc()
	return stored, nil
}

// writeNotification performs the best-effort secondary write.
// Anonymous submissions have no inbox, so the write is skipped.
func (uc *bookingUseCase) writeNotification(ctx context.Context, rc domain.RequestContext, rec domain.BookingRecord) domain.NotificationOutcome {
	if !rc.Authenticated() {
		metrics.NotificationWrites.WithLabelValues(string(domain.NotificationSkipped)).Inc()
		return domain.NotificationOutcome{Status: domain.NotificationSkipped}
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.NotificationTimeout)
	defer cancel()

	n := domain.NewBookingNotification(rc.Identity.UserID, rec, uc.clock.Now())
	if _, err := uc.store.InsertNotification(ctx, n); err != nil {
		metrics.NotificationWrites.WithLabelValues(string(domain.NotificationFailed)).Inc()
		uc.logger.Warn().
			Err(err).
			Str("booking_id", rec.ID).
			Str("user_id", rc.Identity.UserID).
			Msg("Booking notification write failed")
		return domain.NotificationOutcome{
			Status: domain.NotificationFailed,
			Err:    errors.Join(domain.ErrNotificationWriteFailed, err),
		}
	}

	metrics.NotificationWrites.WithLabelValues(string(domain.NotificationDelivered)).Inc()
	return domain.NotificationOutcome{Status: domain.NotificationDelivered}
}

// publish emits the booking.created event when a publisher is configured.
func (uc *bookingUseCase) publish(ctx context.Context, rec domain.BookingRecord) {
	if uc.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.PublishTimeout)
	defer cancel()

	event := domain.BookingEvent{
		Type:      domain.EventTypeBookingCreated,
		BookingID: rec.ID,
		UserID:    rec.UserID,
		Booking:   rec,
	}
	if err := uc.publisher.PublishBookingEvent(ctx, event); err != nil {
		metrics.EventPublishErrors.Inc()
		uc.logger.Warn().Err(err).Str("booking_id", rec.ID).Msg("Booking event publish failed")
	}
}

// Ensure bookingUseCase implements BookingUseCase at compile time.
var _ BookingUseCase = (*bookingUseCase)(nil)
