// Package logs builds tody's structured logger.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options configure New.
type Options struct {
	// File is the log file path. Empty disables file logging.
	File string
	// Level is one of debug, info, warn, error.
	Level string
	// Console, when non-nil, receives a copy of every record. The TUI leaves
	// it nil; one-shot commands pass stderr with --verbose.
	Console io.Writer
}

// Logger bundles the slog logger with the resources it owns.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar

	closer io.Closer
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// New fans records out to the log file and, optionally, a console writer.
// With neither configured it returns a logger that drops everything.
func New(opts Options) (*Logger, error) {
	level := new(slog.LevelVar)
	parsed, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	level.Set(parsed)

	var handlers []slog.Handler
	var closer io.Closer

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		closer = file
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	}

	if opts.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Console, &slog.HandlerOptions{Level: level}))
	}

	var handler slog.Handler = slog.DiscardHandler
	if len(handlers) > 0 {
		handler = slogmulti.Fanout(handlers...)
	}
	return &Logger{
		Logger: slog.New(handler),
		Level:  level,
		closer: closer,
	}, nil
}

// ParseLevel maps a config level name to a slog.Level. Blank means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
