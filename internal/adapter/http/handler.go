package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/charter-booking/charter-booking-service/internal/adapter/http/middleware"
	"github.com/charter-booking/charter-booking-service/internal/adapter/http/response"
	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/usecase"
)

// CharterHandler handles HTTP requests for quoting, booking and checkout endpoints.
type CharterHandler struct {
	quotes   usecase.QuoteUseCase
	bookings usecase.BookingUseCase
	checkout usecase.CheckoutUseCase
	log      zerolog.Logger
}

// NewCharterHandler creates a new CharterHandler.
// checkout may be nil when payments are not configured.
func NewCharterHandler(quotes usecase.QuoteUseCase, bookings usecase.BookingUseCase, checkout usecase.CheckoutUseCase, log zerolog.Logger) *CharterHandler {
	return &CharterHandler{
		quotes:   quotes,
		bookings: bookings,
		checkout: checkout,
		log:      log,
	}
}

// CreateQuote handles POST /api/v1/quotes
//
// @Summary Rank and price aircraft for a route
// @Description Resolves both airports, computes the great-circle distance and returns every aircraft of the requested class ranked eligible-first
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Route and party size"
// @Success 200 {object} QuoteResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error or unknown airport"
// @Router /api/v1/quotes [post]
func (h *CharterHandler) CreateQuote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	quote, err := h.quotes.Quote(c.Request().Context(), ToDomainQuoteRequest(&req))
	if err != nil {
		if errors.Is(err, domain.ErrAirportNotFound) {
			return response.ValidationErrorWithMessage(c, err.Error())
		}
		return h.handleError(c, err)
	}

	return response.OK(c, ToQuoteResponse(quote))
}

// ListAircraft handles GET /api/v1/aircraft
//
// @Summary List the aircraft catalog
// @Tags catalog
// @Produce json
// @Param class query string false "Vehicle class (fixed-wing, rotary)"
// @Success 200 {object} AircraftListDTO
// @Failure 400 {object} response.ErrorDetail "Unknown vehicle class"
// @Router /api/v1/aircraft [get]
func (h *CharterHandler) ListAircraft(c echo.Context) error {
	var class *domain.VehicleClass
	if raw := c.QueryParam("class"); raw != "" {
		parsed, err := domain.ParseVehicleClass(raw)
		if err != nil {
			return response.ValidationErrorWithMessage(c, "class must be one of: fixed-wing, rotary")
		}
		class = &parsed
	}

	aircraft := h.quotes.ListAircraft(class)
	return response.OK(c, AircraftListDTO{Aircraft: aircraft, Total: len(aircraft)})
}

// GetAirport handles GET /api/v1/airports/:code
//
// @Summary Look up an airport
// @Tags catalog
// @Produce json
// @Param code path string true "IATA airport code"
// @Success 200 {object} AirportDTO
// @Failure 404 {object} response.ErrorDetail "Unknown airport"
// @Router /api/v1/airports/{code} [get]
func (h *CharterHandler) GetAirport(c echo.Context) error {
	airport, err := h.quotes.Airport(c.Param("code"))
	if err != nil {
		if errors.Is(err, domain.ErrAirportNotFound) {
			return response.NotFound(c, err.Error())
		}
		return h.handleError(c, err)
	}
	return response.OK(c, ToAirportDTO(airport))
}

// SubmitBooking handles POST /api/v1/bookings
//
// @Summary Submit a booking request
// @Description Validates and stores a pending booking. Authenticated callers also receive an inbox notification.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client token identifying one submission attempt"
// @Param Authorization header string false "Bearer access token"
// @Param X-Wallet-Address header string false "Connected wallet address"
// @Param request body BookingRequest true "Booking wizard state"
// @Success 201 {object} BookingResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 401 {object} response.ErrorDetail "Invalid access token"
// @Failure 409 {object} response.ErrorDetail "Duplicate submission"
// @Failure 502 {object} response.ErrorDetail "Booking could not be stored"
// @Failure 504 {object} response.ErrorDetail "Datastore timeout"
// @Router /api/v1/bookings [post]
func (h *CharterHandler) SubmitBooking(c echo.Context) error {
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	// Every booking rule is checked in one pass by the use case so the
	// client sees all violations together.
	sub := ToBookingSubmission(&req, c.Request().Header.Get(middleware.IdempotencyKeyHeader))
	rc := middleware.GetRequestContext(c)

	result, err := h.bookings.Submit(c.Request().Context(), rc, sub)
	if err != nil {
		return h.handleBookingError(c, err, sub)
	}

	middleware.SetIdempotentResult(c, result.Record.ID)
	return response.Created(c, ToBookingResponse(result))
}

// CreateCheckoutSession handles POST /api/v1/checkout-sessions
//
// @Summary Create a hosted payment session
// @Tags payments
// @Accept json
// @Produce json
// @Param request body CheckoutSessionRequest true "Checkout parameters"
// @Success 200 {object} CheckoutSessionResponseDTO
// @Failure 400 {object} response.SimpleError "Missing fields or provider error"
// @Failure 405 {object} response.SimpleError "Method not allowed"
// @Failure 500 {object} response.SimpleError "Payments unavailable"
// @Router /api/v1/checkout-sessions [post]
func (h *CharterHandler) CreateCheckoutSession(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodOptions:
		return response.NoContent(c)
	case http.MethodPost:
	default:
		c.Response().Header().Set(echo.HeaderAllow, "POST, OPTIONS")
		return response.PlainError(c, http.StatusMethodNotAllowed, "Method not allowed")
	}

	if h.checkout == nil {
		return response.PlainError(c, http.StatusInternalServerError, "Payments are not configured")
	}

	var req CheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.PlainError(c, http.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	session, err := h.checkout.CreateSession(c.Request().Context(), ToDomainCheckoutRequest(&req))
	if err != nil {
		var perr *domain.PaymentError
		switch {
		case errors.As(err, &perr):
			return response.PlainError(c, http.StatusBadRequest, perr.Message)
		case domain.IsInvalidRequest(err):
			return response.PlainError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			return response.PlainError(c, http.StatusGatewayTimeout, response.MsgTimeout)
		default:
			return response.PlainError(c, http.StatusInternalServerError, "Failed to create checkout session")
		}
	}

	return response.OK(c, CheckoutSessionResponseDTO{URL: session.URL})
}

// Health handles GET /health
// Simple health check endpoint.
func (h *CharterHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *CharterHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap(), validationErrs.Messages())
	}

	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleBookingError maps submission errors to HTTP responses.
func (h *CharterHandler) handleBookingError(c echo.Context, err error, sub domain.BookingSubmission) error {
	switch {
	case domain.IsValidation(err):
		return h.handleValidationError(c, err)
	case domain.IsDuplicateSubmission(err):
		details := map[string]string{}
		if sub.IdempotencyKey != nil {
			details["idempotencyKey"] = *sub.IdempotencyKey
		}
		return response.Conflict(c, details)
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	case domain.IsPersistence(err):
		return response.PersistenceFailed(c)
	default:
		return h.handleError(c, err)
	}
}

// handleError maps remaining errors to HTTP responses.
func (h *CharterHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	case domain.IsValidation(err), domain.IsInvalidRequest(err):
		return h.handleValidationError(c, err)
	}

	h.log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("Unhandled request error")
	return response.InternalServerError(c)
}
