package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/infrastructure/metrics"
)

// DefaultPaymentTimeout bounds a checkout session request including retries.
const DefaultPaymentTimeout = 15 * time.Second

// CheckoutUseCase defines the interface for payment session creation.
type CheckoutUseCase interface {
	// CreateSession validates the request and asks the payments API for a hosted checkout page.
	CreateSession(ctx context.Context, req domain.CheckoutSessionRequest) (domain.CheckoutSession, error)
}

// checkoutUseCase implements CheckoutUseCase.
type checkoutUseCase struct {
	gateway domain.PaymentGateway
	timeout time.Duration
	logger  zerolog.Logger
}

// NewCheckoutUseCase creates a new CheckoutUseCase. A timeout <= 0 uses DefaultPaymentTimeout.
func NewCheckoutUseCase(gateway domain.PaymentGateway, timeout time.Duration, logger zerolog.Logger) CheckoutUseCase {
	if timeout <= 0 {
		timeout = DefaultPaymentTimeout
	}
	return &checkoutUseCase{
		gateway: gateway,
		timeout: timeout,
		logger:  logger,
	}
}

// CreateSession implements CheckoutUseCase.CreateSession.
func (uc *checkoutUseCase) CreateSession(ctx context.Context, req domain.CheckoutSessionRequest) (domain.CheckoutSession, error) {
	if err := req.Validate(); err != nil {
		metrics.CheckoutSessions.WithLabelValues("invalid").Inc()
		return domain.CheckoutSession{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	session, err := uc.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues("failed").Inc()

		event := uc.logger.Error()
		if errors.Is(err, domain.ErrPaymentProvider) {
			event = uc.logger.Warn()
		}
		event.Err(err).Str("price_id", req.PriceID).Msg("Checkout session creation failed")
		return domain.CheckoutSession{}, err
	}

	metrics.CheckoutSessions.WithLabelValues("created").Inc()
	uc.logger.Info().Str("session_id", session.ID).Str("price_id", req.PriceID).Msg("Checkout session created")
	return session, nil
}

// Ensure checkoutUseCase implements CheckoutUseCase at compile time.
var _ CheckoutUseCase = (*checkoutUseCase)(nil)
