// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Timeouts TimeoutConfig
	Logging  LoggingConfig
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Payments PaymentsConfig
	RabbitMQ RabbitMQConfig
	Pricing  PricingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"20s"`
	BodyLimit    string        `env:"SERVER_BODY_LIMIT" envDefault:"1M"`
	CORSOrigins  []string      `env:"CORS_ALLOW_ORIGINS" envSeparator:","`
}

// TimeoutConfig holds timeouts for calls to external services.
type TimeoutConfig struct {
	Submit       time.Duration `env:"TIMEOUT_SUBMIT" envDefault:"10s"`
	Notification time.Duration `env:"TIMEOUT_NOTIFICATION" envDefault:"3s"`
	Publish      time.Duration `env:"TIMEOUT_PUBLISH" envDefault:"3s"`
	Payment      time.Duration `env:"TIMEOUT_PAYMENT" envDefault:"15s"`
}

// BookingPipeline is the longest a booking submission can run: the booking
// write, the notification write and the event publish back to back.
func (t TimeoutConfig) BookingPipeline() time.Duration {
	return t.Submit + t.Notification + t.Publish
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	// CatalogPath points at an aircraft catalog JSON file; empty uses the embedded catalog
	CatalogPath string `env:"CATALOG_PATH"`
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	URL            string        `env:"DATABASE_URL"`
	MaxConns       int32         `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	ConnectTimeout time.Duration `env:"DATABASE_CONNECT_TIMEOUT" envDefault:"5s"`
	AutoMigrate    bool          `env:"DATABASE_AUTO_MIGRATE" envDefault:"false"`
}

// RedisConfig holds the idempotency store settings. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// LockTTL defaults to Timeouts.BookingPipeline() when unset or zero
	LockTTL time.Duration `env:"IDEMPOTENCY_LOCK_TTL"`
	TTL     time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
}

// AuthConfig holds access token verification settings. An empty secret disables authentication.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

// PaymentsConfig holds the payments API settings. An empty key disables checkout.
type PaymentsConfig struct {
	APIKey  string `env:"PAYMENTS_API_KEY"`
	BaseURL string `env:"PAYMENTS_BASE_URL" envDefault:"https://api.stripe.com"`
}

// RabbitMQConfig holds the event publisher settings. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"charter.bookings"`
}

// PricingConfig holds quote settings.
type PricingConfig struct {
	Currency string `env:"PRICING_CURRENCY" envDefault:"USD"`
}

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Pricing.Currency = strings.ToUpper(strings.TrimSpace(cfg.Pricing.Currency))

	if cfg.Redis.LockTTL == 0 {
		cfg.Redis.LockTTL = cfg.Timeouts.BookingPipeline()
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	positive := []struct {
		name  string
		value time.Duration
	}{
		{"SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout},
		{"TIMEOUT_SUBMIT", cfg.Timeouts.Submit},
		{"TIMEOUT_NOTIFICATION", cfg.Timeouts.Notification},
		{"TIMEOUT_PUBLISH", cfg.Timeouts.Publish},
		{"TIMEOUT_PAYMENT", cfg.Timeouts.Payment},
		{"DATABASE_CONNECT_TIMEOUT", cfg.Database.ConnectTimeout},
		{"IDEMPOTENCY_LOCK_TTL", cfg.Redis.LockTTL},
		{"IDEMPOTENCY_TTL", cfg.Redis.TTL},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive", p.name)
		}
	}

	// The booking write must finish before the server gives up on the response
	if cfg.Timeouts.Submit >= cfg.Server.WriteTimeout {
		return fmt.Errorf("TIMEOUT_SUBMIT (%s) should be less than SERVER_WRITE_TIMEOUT (%s)",
			cfg.Timeouts.Submit, cfg.Server.WriteTimeout)
	}

	// A key must stay locked until the request holding it can no longer be running
	if pipeline := cfg.Timeouts.BookingPipeline(); cfg.Redis.LockTTL < pipeline {
		return fmt.Errorf("IDEMPOTENCY_LOCK_TTL (%s) should cover TIMEOUT_SUBMIT + TIMEOUT_NOTIFICATION + TIMEOUT_PUBLISH (%s)",
			cfg.Redis.LockTTL, pipeline)
	}

	if cfg.Redis.LockTTL >= cfg.Redis.TTL {
		return fmt.Errorf("IDEMPOTENCY_LOCK_TTL (%s) should be less than IDEMPOTENCY_TTL (%s)",
			cfg.Redis.LockTTL, cfg.Redis.TTL)
	}

	// Validate database
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Database.MaxConns < 1 {
		return fmt.Errorf("DATABASE_MAX_CONNS must be at least 1, got %d", cfg.Database.MaxConns)
	}

	if !currencyPattern.MatchString(cfg.Pricing.Currency) {
		return fmt.Errorf("PRICING_CURRENCY must be a 3-letter ISO code; got %q", cfg.Pricing.Currency)
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if cfg.IsProduction() && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required in production")
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IdempotencyEnabled reports whether a Redis address is configured.
func (c *Config) IdempotencyEnabled() bool {
	return c.Redis.Addr != ""
}

// PaymentsEnabled reports whether a payments API key is configured.
func (c *Config) PaymentsEnabled() bool {
	return c.Payments.APIKey != ""
}

// EventsEnabled reports whether a RabbitMQ URL is configured.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQ.URL != ""
}
