// Package main is the entry point for the charter booking service.
//
//	@title						Charter Booking API
//	@version					1.0.0
//	@description				Ranks and prices charter aircraft for a route, accepts booking requests and opens hosted payment sessions.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/charter-booking/charter-booking-service/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/charter-booking/charter-booking-service/docs"

	// Application layers
	"github.com/charter-booking/charter-booking-service/internal/adapter/catalog"
	"github.com/charter-booking/charter-booking-service/internal/adapter/events/rabbitmq"
	charterhttp "github.com/charter-booking/charter-booking-service/internal/adapter/http"
	"github.com/charter-booking/charter-booking-service/internal/adapter/http/middleware"
	"github.com/charter-booking/charter-booking-service/internal/adapter/idempotency/redis"
	"github.com/charter-booking/charter-booking-service/internal/adapter/payment/stripe"
	"github.com/charter-booking/charter-booking-service/internal/adapter/storage/postgres"
	"github.com/charter-booking/charter-booking-service/internal/config"
	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/infrastructure/logger"
	"github.com/charter-booking/charter-booking-service/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
	startupTimeout  = 15 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	root := setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Bool("idempotency", cfg.IdempotencyEnabled()).
		Bool("payments", cfg.PaymentsEnabled()).
		Bool("events", cfg.EventsEnabled()).
		Msg("Configuration loaded")

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	app, err := newApp(ctx, cfg, root)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.IsDevelopment()

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	middleware.SetupWithConfig(e, root.Component("http"), middleware.Options{
		BodyLimit:    cfg.Server.BodyLimit,
		AllowOrigins: cfg.Server.CORSOrigins,
	})

	// Setup routes
	app.registerRoutes(e)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, app)
}

// setupLogger builds the root logger from config and installs it globally.
func setupLogger(cfg *config.Config) *logger.Logger {
	root := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: logger.DefaultServiceName,
		Environment: cfg.App.Env,
	})
	logger.SetDefault(root)
	return root
}

// app holds the wired handler, endpoint middleware and everything that must be closed on shutdown.
type app struct {
	handler *charterhttp.CharterHandler
	routeMW charterhttp.RouteMiddleware
	closers []io.Closer
}

// closerFunc adapts a func() to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// newApp connects to backing services and builds the use cases.
// PostgreSQL is required; Redis, RabbitMQ, payments and token verification are optional.
func newApp(ctx context.Context, cfg *config.Config, root *logger.Logger) (*app, error) {
	a := &app{}

	cat, err := catalog.Load(cfg.App.CatalogPath, root.Component("catalog"))
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Info().
		Int("aircraft", len(cat.All())).
		Int("airports", cat.AirportCount()).
		Str("currency", cat.Currency()).
		Msg("Catalog loaded")

	log.Info().Str("database", postgres.RedactURL(cfg.Database.URL)).Msg("Connecting to PostgreSQL")

	pool, err := postgres.NewPool(ctx, postgres.Config{
		URL:            cfg.Database.URL,
		MaxConns:       cfg.Database.MaxConns,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, root.Component("postgres"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closerFunc(func() error { pool.Close(); return nil }))

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, root.Component("postgres")); err != nil {
			a.close()
			return nil, err
		}
	}

	var publisher domain.EventPublisher
	if cfg.EventsEnabled() {
		pub, err := rabbitmq.NewPublisher(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
		}, root.Component("rabbitmq"))
		if err != nil {
			// Events are best-effort; bookings are still accepted without a broker
			log.Warn().Err(err).Msg("RabbitMQ unavailable, booking events disabled")
		} else {
			publisher = pub
			a.closers = append(a.closers, pub)
		}
	}

	if cfg.IdempotencyEnabled() {
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, client)
		a.routeMW.Idempotency = middleware.Idempotency(redis.NewStore(client), middleware.IdempotencyConfig{
			LockTTL: cfg.Redis.LockTTL,
			TTL:     cfg.Redis.TTL,
		}, root.Component("idempotency"))
	}

	if cfg.Auth.JWTSecret != "" {
		a.routeMW.Auth = middleware.Auth(middleware.NewTokenVerifier(cfg.Auth.JWTSecret))
	} else {
		log.Warn().Msg("AUTH_JWT_SECRET not set, all bookings are anonymous")
	}

	var checkout usecase.CheckoutUseCase
	if cfg.PaymentsEnabled() {
		gateway, err := stripe.NewClient(stripe.Config{
			APIKey:  cfg.Payments.APIKey,
			BaseURL: cfg.Payments.BaseURL,
		}, root.Component("payments"))
		if err != nil {
			a.close()
			return nil, err
		}
		checkout = usecase.NewCheckoutUseCase(gateway, cfg.Timeouts.Payment, root.Component("checkout"))
	}

	quotes := usecase.NewQuoteUseCase(cat, cat, &usecase.QuoteConfig{
		Currency: cfg.Pricing.Currency,
	}, root.Component("quote"))

	bookings := usecase.NewBookingUseCase(usecase.BookingDeps{
		Catalog:   cat,
		Store:     postgres.NewStore(pool),
		Publisher: publisher,
		Logger:    root.Component("booking"),
	}, &usecase.BookingConfig{
		SubmitTimeout:       cfg.Timeouts.Submit,
		NotificationTimeout: cfg.Timeouts.Notification,
		PublishTimeout:      cfg.Timeouts.Publish,
	})

	a.handler = charterhttp.NewCharterHandler(quotes, bookings, checkout, root.Component("http"))
	return a, nil
}

// registerRoutes configures the HTTP routes.
func (a *app) registerRoutes(e *echo.Echo) {
	charterhttp.RegisterRoutesWithMiddleware(e, a.handler, a.routeMW)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// close releases backing service connections in reverse order of creation.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.Error().Err(err).Msg("Error closing resource")
		}
	}
	a.closers = nil
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, a *app) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	a.close()
	log.Info().Msg("Server stopped")
}
