// Package logging builds the slog logger described by configs.LogConfig.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/yourusername/reqcache/configs"
)

// ProgramLevel is the common log level. SetLevel changes it for every logger
// built by New, so a config reload can adjust verbosity in place.
var ProgramLevel = new(slog.LevelVar)

// New creates a logger from the log configuration. The returned closer
// releases the log file when Output is "file" and is a no-op otherwise.
func New(cfg configs.LogConfig) (*slog.Logger, io.Closer, error) {
	if err := SetLevel(cfg.Level); err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
	)
	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "stderr", "":
		w = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	default:
		return nil, nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	logger, err := NewWithWriter(w, cfg.Format)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return logger, closer, nil
}

// NewWithWriter creates a logger writing to w in the given format.
func NewWithWriter(w io.Writer, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: ProgramLevel}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unsupported log format: %s", format)
}

// SetLevel parses level and applies it to ProgramLevel.
func SetLevel(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	ProgramLevel.Set(l)
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
