// Package logging builds the zerolog loggers used by the server and CLI.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Canonical field names.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldPlacementID = "placement_id"
	FieldPluginID    = "plugin_id"
	FieldRegion      = "region"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config captures options for building a logger.
type Config struct {
	Level   string    // "debug", "info", ...; defaults to info
	Format  string    // FormatJSON or FormatConsole
	Output  io.Writer // defaults to os.Stderr
	Service string    // attached to every entry; defaults to "nodeblock"
}

// New builds a logger from cfg. Unknown levels fall back to info.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if strings.EqualFold(cfg.Format, FormatConsole) {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
	}

	service := cfg.Service
	if service == "" {
		service = "nodeblock"
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// WithComponent returns a child logger annotated with component.
func WithComponent(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str(FieldComponent, component).Logger()
}

// IntoContext stores logger on ctx.
func IntoContext(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored on ctx, or fallback when none is
// present.
func FromContext(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return fallback
	}
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return fallback
}
