// Package stripe creates hosted checkout sessions with the stripe-go SDK.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/infrastructure/retry"
)

const (
	// DefaultBaseURL is the public Stripe API endpoint.
	DefaultBaseURL = "https://api.stripe.com"

	// DefaultHTTPTimeout bounds a single attempt.
	DefaultHTTPTimeout = 10 * time.Second
)

// Config holds the client settings.
type Config struct {
	// APIKey is the secret key
	APIKey string

	// BaseURL defaults to DefaultBaseURL
	BaseURL string

	// Retry defaults to retry.PaymentsConfig
	Retry *retry.Config

	// HTTPClient defaults to a client with DefaultHTTPTimeout
	HTTPClient *http.Client
}

// Client implements domain.PaymentGateway.
type Client struct {
	sessions   session.Client
	baseURL    string
	httpClient *http.Client
	retry      retry.Config
	logger     zerolog.Logger
}

// NewClient creates a new Client. An empty API key is rejected.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("stripe: api key is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	retryCfg := retry.PaymentsConfig
	if cfg.Retry != nil {
		retryCfg = *cfg.Retry
	}
	log := logger.With().Str("component", "stripe").Logger()

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	// Retries are driven by retry.Config, so the SDK makes a single attempt.
	backend := stripeapi.GetBackendWithConfig(stripeapi.APIBackend, &stripeapi.BackendConfig{
		URL:               stripeapi.String(baseURL),
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripeapi.Int64(0),
		LeveledLogger:     leveledLogger{log: log},
	})

	return &Client{
		sessions:   session.Client{B: backend, Key: cfg.APIKey},
		baseURL:    baseURL,
		httpClient: httpClient,
		retry: retryCfg.WithRetryIf(retry.SkipPermanent).
			WithOnRetry(func(attempt int, err error, wait time.Duration) {
				log.Debug().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("Checkout session attempt failed")
			}),
		logger: log,
	}, nil
}

// CreateCheckoutSession implements domain.PaymentGateway.
// Transport errors, 429 and 5xx responses are retried; other 4xx responses are returned at once.
func (c *Client) CreateCheckoutSession(ctx context.Context, req domain.CheckoutSessionRequest) (domain.CheckoutSession, error) {
	out, err := retry.DoWithResult(ctx, func() (domain.CheckoutSession, error) {
		return c.create(ctx, req)
	}, c.retry)
	if err != nil {
		return domain.CheckoutSession{}, retry.Cause(err)
	}

	return out, nil
}

func (c *Client) create(ctx context.Context, req domain.CheckoutSessionRequest) (domain.CheckoutSession, error) {
	params := sessionParams(req)
	params.Context = ctx

	out, err := c.sessions.New(params)
	if err != nil {
		if ctx.Err() != nil {
			return domain.CheckoutSession{}, retry.NewPermanent(ctx.Err())
		}

		var serr *stripeapi.Error
		if errors.As(err, &serr) {
			perr := toPaymentError(serr)
			if !retry.RetryableStatus(serr.HTTPStatusCode) {
				return domain.CheckoutSession{}, retry.NewPermanent(perr)
			}
			return domain.CheckoutSession{}, perr
		}

		return domain.CheckoutSession{}, fmt.Errorf("checkout session request: %w", err)
	}

	if out == nil || out.URL == "" {
		return domain.CheckoutSession{}, retry.NewPermanent(&domain.PaymentError{
			StatusCode: http.StatusOK,
			Message:    "checkout session has no url",
		})
	}

	return domain.CheckoutSession{ID: out.ID, URL: out.URL}, nil
}

// toPaymentError keeps the provider message when there is one.
func toPaymentError(err *stripeapi.Error) *domain.PaymentError {
	msg := err.Msg
	if msg == "" {
		msg = fmt.Sprintf("payments API returned %d", err.HTTPStatusCode)
	}
	return &domain.PaymentError{StatusCode: err.HTTPStatusCode, Message: msg}
}

// sessionParams builds a one-item payment session.
func sessionParams(req domain.CheckoutSessionRequest) *stripeapi.CheckoutSessionParams {
	params := &stripeapi.CheckoutSessionParams{
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Price:    stripeapi.String(req.PriceID),
				Quantity: stripeapi.Int64(1),
			},
		},
		SuccessURL: stripeapi.String(req.SuccessURL),
		CancelURL:  stripeapi.String(req.CancelURL),
	}
	if req.CustomerID != "" {
		params.Customer = stripeapi.String(req.CustomerID)
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	return params
}

// leveledLogger routes SDK logging into zerolog. Request chatter stays at debug;
// provider errors are returned to the caller and logged there.
type leveledLogger struct {
	log zerolog.Logger
}

func (l leveledLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
func (l leveledLogger) Infof(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
func (l leveledLogger) Warnf(format string, v ...interface{}) { l.log.Warn().Msgf(format, v...) }
func (l leveledLogger) Errorf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }

// Ensure Client implements domain.PaymentGateway at compile time.
var (
	_ domain.PaymentGateway            = (*Client)(nil)
	_ stripeapi.LeveledLoggerInterface = leveledLogger{}
)
