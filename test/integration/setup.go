// Package integration provides helpers and integration tests for the charter booking service.
// Integration tests verify that components work together correctly, including
// HTTP middleware, handlers, use cases, the embedded catalog and in-memory stores.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/charter-booking/charter-booking-service/internal/adapter/catalog"
	httpAdapter "github.com/charter-booking/charter-booking-service/internal/adapter/http"
	"github.com/charter-booking/charter-booking-service/internal/adapter/http/middleware"
	"github.com/charter-booking/charter-booking-service/internal/adapter/http/response"
	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/infrastructure/timeutil"
	"github.com/charter-booking/charter-booking-service/internal/usecase"
	"github.com/charter-booking/charter-booking-service/test/mock"
)

// TestSecret signs access tokens in integration tests.
const TestSecret = "integration-secret"

// TestNow is the fixed time used by the server's clocks.
var TestNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

// ServerOptions configures the collaborators of a TestServer. Nil fields get defaults.
type ServerOptions struct {
	Store       *mock.BookingStore
	Publisher   *mock.EventPublisher
	Idempotency *mock.IdempotencyStore
	Checkout    usecase.CheckoutUseCase
	Booking     *usecase.BookingConfig
}

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo        *echo.Echo
	Handler     *httpAdapter.CharterHandler
	Store       *mock.BookingStore
	Publisher   *mock.EventPublisher
	Idempotency *mock.IdempotencyStore
	Clock       *timeutil.MockClock
}

// NewTestServer creates a test server wired like cmd/server, with in-memory backing services.
func NewTestServer(opts ServerOptions) *TestServer {
	clock := timeutil.NewMockClock(TestNow)

	if opts.Store == nil {
		opts.Store = mock.NewBookingStore(clock)
	}
	if opts.Publisher == nil {
		opts.Publisher = mock.NewEventPublisher()
	}
	if opts.Idempotency == nil {
		opts.Idempotency = mock.NewIdempotencyStore(clock)
	}

	cat, err := catalog.Default(zerolog.Nop())
	if err != nil {
		panic("load embedded catalog: " + err.Error())
	}

	quotes := usecase.NewQuoteUseCase(cat, cat, nil, zerolog.Nop())
	bookings := usecase.NewBookingUseCase(usecase.BookingDeps{
		Catalog:   cat,
		Store:     opts.Store,
		Publisher: opts.Publisher,
		Clock:     clock,
		Logger:    zerolog.Nop(),
	}, opts.Booking)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.Setup(e, zerolog.Nop())

	handler := httpAdapter.NewCharterHandler(quotes, bookings, opts.Checkout, zerolog.Nop())
	httpAdapter.RegisterRoutesWithMiddleware(e, handler, httpAdapter.RouteMiddleware{
		Auth:        middleware.Auth(middleware.NewTokenVerifier(TestSecret)),
		Idempotency: middleware.Idempotency(opts.Idempotency, middleware.DefaultIdempotencyConfig(), zerolog.Nop()),
	})

	return &TestServer{
		Echo:        e,
		Handler:     handler,
		Store:       opts.Store,
		Publisher:   opts.Publisher,
		Idempotency: opts.Idempotency,
		Clock:       clock,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
	Headers     map[string]string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch b := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// QuoteRequest posts a quote request.
func (ts *TestServer) QuoteRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/quotes",
		Body:   body,
	})
}

// SubmitBooking posts a booking with optional headers.
func (ts *TestServer) SubmitBooking(body interface{}, headers map[string]string) Response {
	return ts.Do(Request{
		Method:  http.MethodPost,
		Path:    "/api/v1/bookings",
		Body:    body,
		Headers: headers,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseQuoteResponse parses the response body as a quote.
func (r *Response) ParseQuoteResponse() (*httpAdapter.QuoteResponseDTO, error) {
	var resp httpAdapter.QuoteResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseBookingResponse parses the response body as a booking submission result.
func (r *Response) ParseBookingResponse() (*httpAdapter.BookingResponseDTO, error) {
	var resp httpAdapter.BookingResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as the standard error envelope.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var errResp response.ErrorDetail
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return &errResp, nil
}

// DefaultQuoteRequest returns a valid Paris to Nice jet quote request.
func DefaultQuoteRequest() httpAdapter.QuoteRequest {
	return httpAdapter.QuoteRequest{
		Origin:       "LBG",
		Destination:  "NCE",
		Passengers:   4,
		VehicleClass: string(domain.VehicleClassFixedWing),
	}
}

// DefaultBookingRequest returns a valid booking body for the default quote.
func DefaultBookingRequest() httpAdapter.BookingRequest {
	return httpAdapter.BookingRequest{
		Origin:             "LBG",
		Destination:        "NCE",
		DepartureDate:      "2026-07-14",
		DepartureTime:      "09:30",
		Passengers:         4,
		Luggage:            4,
		AircraftCategoryID: "midsize-jet",
		CarbonOption:       "none",
		TotalPrice:         25412,
		Currency:           "eur",
		PaymentMethod:      "card",
		Contact: httpAdapter.ContactRequest{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "+33123456789",
		},
	}
}
