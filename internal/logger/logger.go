// Package logger builds slog loggers from LogConfig.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/robert-malhotra/go-dsg/internal/config"
	"github.com/robert-malhotra/go-dsg/internal/errcode"
)

// New creates a logger writing to w with the level and format of cfg.
// Invalid values default to Info level and Text format.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive).
// Invalid levels default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init sets the default slog logger from cfg. The "file" destination
// truncates and writes logPath; the returned closer releases it.
func Init(cfg config.LogConfig, logPath string) (io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	switch cfg.Destination {
	case "stdout":
		w = os.Stdout
	case "file":
		f, err := os.Create(logPath)
		if err != nil {
			return nil, CreateLogFileError(logPath, err)
		}
		w, closer = f, f
	}

	slog.SetDefault(New(cfg, w))
	return closer, nil
}

// CreateLogFileError creates an error for when the log file cannot be
// created.
func CreateLogFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot create log file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot create log file: %w", err),
	}
}
