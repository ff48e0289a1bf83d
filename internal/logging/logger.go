// Package logging builds the slog logger used by the dataprep command.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level: must be 'debug', 'info', 'warn' or 'error'")
	ErrInvalidFormat = errors.New("invalid log format: must be 'text' or 'json'")
)

// ParseLevel converts a level name to its slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Wrap(ErrInvalidLevel, level)
	}
}

// New creates a logger writing to out. It does not touch the default logger.
func New(level, format string, out io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler

	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(out, handlerOpts)
	case "text", "":
		handler = slog.NewTextHandler(out, handlerOpts)
	default:
		return nil, errors.Wrap(ErrInvalidFormat, format)
	}

	return slog.New(handler), nil
}
