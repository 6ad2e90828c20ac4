package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Options configures the global middleware stack.
type Options struct {
	Recovery RecoveryConfig

	// BodyLimit caps request bodies, e.g. "1M". Empty disables the limit.
	BodyLimit string

	// AllowOrigins enables CORS for the listed origins. Empty disables CORS.
	AllowOrigins []string
}

// Setup registers the global middleware with default options.
// Order matters: RequestID first so every later log line carries the ID,
// then RequestLogger, then Recover so panics are logged with the request.
func Setup(e *echo.Echo, log zerolog.Logger) {
	SetupWithConfig(e, log, Options{Recovery: DefaultRecoveryConfig()})
}

// SetupWithConfig registers the global middleware with custom options.
func SetupWithConfig(e *echo.Echo, log zerolog.Logger, opts Options) {
	for _, mw := range ChainWithConfig(log, opts) {
		e.Use(mw)
	}
}

// Chain returns the default global middleware as a slice for route groups.
func Chain(log zerolog.Logger) []echo.MiddlewareFunc {
	return ChainWithConfig(log, Options{Recovery: DefaultRecoveryConfig()})
}

// ChainWithConfig returns the global middleware for the given options.
func ChainWithConfig(log zerolog.Logger, opts Options) []echo.MiddlewareFunc {
	chain := []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
		RecoverWithConfig(log, opts.Recovery),
	}
	if len(opts.AllowOrigins) > 0 {
		chain = append(chain, echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: opts.AllowOrigins,
			AllowHeaders: []string{
				echo.HeaderOrigin,
				echo.HeaderContentType,
				echo.HeaderAuthorization,
				IdempotencyKeyHeader,
				WalletHeader,
				RequestIDHeader,
			},
		}))
	}
	if opts.BodyLimit != "" {
		chain = append(chain, echomw.BodyLimit(opts.BodyLimit))
	}
	return chain
}
