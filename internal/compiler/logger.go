package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger provides verbose output for analysis decisions during compilation.
type Logger struct {
	enabled bool
	log     *slog.Logger
}

// NewLogger creates a new logger instance writing text records to stderr.
func NewLogger(enabled bool) *Logger {
	return NewLoggerWith(enabled, nil)
}

// NewLoggerWith creates a logger backed by l. A nil l writes text records
// to stderr.
func NewLoggerWith(enabled bool, l *slog.Logger) *Logger {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Logger{
		enabled: enabled,
		log:     l.With("component", "regnfa"),
	}
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.log = slog.New(slog.NewTextHandler(w, nil)).With("component", "regnfa")
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l.enabled {
		l.log.Info(fmt.Sprintf(format, args...))
	}
}

// Attrs prints a message with structured attributes if verbose mode is enabled.
func (l *Logger) Attrs(msg string, args ...any) {
	if l.enabled {
		l.log.Info(msg, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l.enabled {
		l.log.Info("section", "name", name)
	}
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
