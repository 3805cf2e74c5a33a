package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger defines the fineas logging contract.
// Implementations should support standard log levels and be safe for concurrent use.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// ZeroLogger implements Logger on top of zerolog.
// SetLevel may be called while other goroutines are logging.
type ZeroLogger struct {
	mu     sync.RWMutex
	logger zerolog.Logger
}

// New creates a ZeroLogger writing JSON lines to w.
func New(w io.Writer) *ZeroLogger {
	return &ZeroLogger{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// NewConsole creates a ZeroLogger with human-readable output on stdout.
func NewConsole() *ZeroLogger {
	return New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime})
}

// SetLevel parses level ("debug", "info", "warn", "error") and applies it.
func (l *ZeroLogger) SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.logger = l.logger.Level(lvl)
	l.mu.Unlock()
	return nil
}

func (l *ZeroLogger) current() zerolog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger
}

func (l *ZeroLogger) Info(msg string, args ...any) {
	lg := l.current()
	lg.Info().Msgf(msg, args...)
}

func (l *ZeroLogger) Warn(msg string, args ...any) {
	lg := l.current()
	lg.Warn().Msgf(msg, args...)
}

func (l *ZeroLogger) Error(msg string, args ...any) {
	lg := l.current()
	lg.Error().Msgf(msg, args...)
}

func (l *ZeroLogger) Debug(msg string, args ...any) {
	lg := l.current()
	lg.Debug().Msgf(msg, args...)
}

// Default provides a global default logger instance writing to the console.
var Default = NewConsole()
