package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Config describes how the service logger is built.
type Config struct {
	Level       string `validate:"oneof=trace debug info warn error"`
	Format      string `validate:"oneof=json console"`
	ServiceName string `validate:"required"`
}

// New builds a zerolog.Logger writing to stdout.
func New(cfg Config) (zerolog.Logger, error) {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds a zerolog.Logger writing to w. The level is applied to the
// returned logger only, the global zerolog level is left untouched.
func NewWithWriter(cfg Config, w io.Writer) (zerolog.Logger, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := w
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger(), nil
}
