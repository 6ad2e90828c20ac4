// Package logger builds the service's zerolog logger. Output is JSON by default
// or human readable console text for local runs.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultServiceName is attached to every entry as the "service" field.
const DefaultServiceName = "charter-booking"

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum level (debug, info, warn, error); unknown values fall back to info
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is json or console
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// EnableCaller adds the file:line of the log call
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	// ServiceName fills the "service" field
	ServiceName string `env:"SERVICE_NAME" envDefault:"charter-booking"`

	// Environment fills the "env" field when set
	Environment string
}

// DefaultConfig returns JSON output at info level.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		ServiceName: DefaultServiceName,
	}
}

// Logger is the root service logger. Components derive tagged children from it.
type Logger struct {
	zerolog.Logger
	level zerolog.Level
}

// New creates a Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a Logger writing to output.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level := parseLevel(cfg.Level)

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	service := cfg.ServiceName
	if service == "" {
		service = DefaultServiceName
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp().Str("service", service)
	if cfg.Environment != "" {
		ctx = ctx.Str("env", cfg.Environment)
	}
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return &Logger{Logger: ctx.Logger(), level: level}
}

func parseLevel(raw string) zerolog.Level {
	level, err := zerolog.ParseLevel(raw)
	if err != nil || raw == "" {
		return zerolog.InfoLevel
	}
	return level
}

// WithContext returns a child Logger carrying an extra string field.
func (l *Logger) WithContext(key, value string) *Logger {
	return &Logger{Logger: l.With().Str(key, value).Logger(), level: l.level}
}

// Component returns the zerolog.Logger handed to an adapter or use case,
// tagged with its name in the "component" field.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.WithContext("component", name).Logger
}

// Nop returns a disabled logger.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop(), level: zerolog.Disabled}
}

// SetDefault installs l as the global logger of the zerolog log package
// and applies its level globally.
func SetDefault(l *Logger) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(l.level)
	log.Logger = l.Logger
}
