// Package logging builds the structured loggers used by Pipelines and Stages
package logging

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-cz/devslog"
	"github.com/mattn/go-isatty"
)

const (
	// TraceLevel is more verbose than DebugLevel, and is used to log every pulled Row
	TraceLevel = slog.LevelDebug - 4
	// DebugLevel indicates a log message's level of criticality
	DebugLevel = slog.LevelDebug
	// InfoLevel indicates a log message's level of criticality
	InfoLevel = slog.LevelInfo
	// WarnLevel indicates a log message's level of criticality
	WarnLevel = slog.LevelWarn
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel = slog.LevelError
)

// ErrInvalidLogLevel is returned when a log level name cannot be parsed
var ErrInvalidLogLevel = stderrors.New("invalid log level")

// LogLevelToString translates a log level to a string representation
func LogLevelToString(level slog.Level) string {
	switch {
	case level <= TraceLevel:
		return "TRACE"
	case level <= DebugLevel:
		return "DEBUG"
	case level <= InfoLevel:
		return "INFO"
	case level <= WarnLevel:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel translates the name of a log level into a slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
	}
}

// CreateLogger returns a logger writing to w at the given level. Terminals get
// human-readable output, and everything else gets one JSON object per line.
func CreateLogger(level string, w io.Writer) (*slog.Logger, error) {
	parsedLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{
		Level: parsedLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(LogLevelToString(l))
				}
			}
			return a
		},
	}
	var handler slog.Handler
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		handler = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: opts,
		})
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler), nil
}

// Discard returns a logger which drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: ErrorLevel + 1}))
}
