// Package logger provides structured logging for the game server.
// Every state change the engine makes should be traceable through this.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog logger behind the small surface the engine uses.
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger writing JSON lines to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

// NewLogger creates a console logger on stdout at info level.
func NewLogger() *Logger {
	return NewConsole(os.Stdout, "info")
}

// NewConsole creates a human-readable logger.
func NewConsole(w io.Writer, level string) *Logger {
	return New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}, level)
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger tagged with a string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Debug logs verbose diagnostics.
func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	l.zl.Error().Msg(msg)
}

// Err logs err with a message.
func (l *Logger) Err(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

// Event logs a specific game event for the captain's oversight.
func (l *Logger) Event(eventType string, actorID string, details string) {
	l.zl.Info().
		Str("event", eventType).
		Str("actor", actorID).
		Msg(details)
}
