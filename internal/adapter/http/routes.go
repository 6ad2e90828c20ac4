package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteMiddleware holds the endpoint-specific middleware.
// Nil entries are skipped.
type RouteMiddleware struct {
	// Auth resolves the optional caller identity on booking routes
	Auth echo.MiddlewareFunc

	// Idempotency deduplicates booking submissions by Idempotency-Key
	Idempotency echo.MiddlewareFunc
}

// RegisterRoutes registers all charter booking API routes without endpoint middleware.
func RegisterRoutes(e *echo.Echo, h *CharterHandler) {
	RegisterRoutesWithMiddleware(e, h, RouteMiddleware{})
}

// RegisterRoutesWithMiddleware registers all routes and attaches endpoint-specific middleware.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *CharterHandler, mw RouteMiddleware) {
	// Health check and metrics (no version prefix)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	api.POST("/quotes", h.CreateQuote)
	api.GET("/aircraft", h.ListAircraft)
	api.GET("/airports/:code", h.GetAirport)

	api.POST("/bookings", h.SubmitBooking, compact(mw.Auth, mw.Idempotency)...)

	// Every method is routed so that non-POST requests get 405 with the JSON body
	api.Match([]string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}, "/checkout-sessions", h.CreateCheckoutSession)
}

func compact(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(mws))
	for _, m := range mws {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
