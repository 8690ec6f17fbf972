package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a leveled logger backed by zerolog.
type Logger struct {
	zl zerolog.Logger
}

// Log is the process-wide logger.
var Log = NewLogger(os.Stdout)

func NewLogger(w io.Writer) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return &Logger{
		zl: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// SetLevel accepts debug, info, warn or error. Unknown values fall back to info.
func (l *Logger) SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	l.zl = l.zl.Level(lvl)
}

// Zerolog exposes the underlying logger for middleware that builds its own events.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}

// Fields are passed as alternating key/value pairs.
func (l *Logger) Debug(msg string, fields ...any) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...any) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...any) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *Logger) Error(msg string, fields ...any) {
	l.zl.Error().Fields(fields).Msg(msg)
}

// Printf lets gorm's logger write SQL traces through the same sink.
func (l *Logger) Printf(format string, args ...any) {
	l.zl.Debug().Str("component", "gorm").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
