// Package log provides structured logging for NBFit estimator operations.
//
// It defines a minimal, slog-compatible logging interface so the fitting
// packages can emit structured events (operation, sample counts, iteration
// progress, convergence) without binding to a specific backend. The default
// implementation is log/slog with a JSON handler; the handler wrapping in
// this package surfaces cockroachdb/errors stack traces as a dedicated
// attribute.
package log

import (
	"log/slog"
	"sync"
)

// Level is the minimum severity a logger reports.
type Level int

const (
	// LevelDebug reports everything, including per-iteration diagnostics.
	LevelDebug Level = iota
	// LevelInfo reports operational events such as fit start/finish.
	LevelInfo
	// LevelWarn reports recoverable conditions such as convergence warnings.
	LevelWarn
	// LevelError reports failures.
	LevelError
)

// Logger is a structured logging interface compatible with log/slog.
// Fields are alternating key/value pairs, as in slog.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a logger with the given fields pre-populated.
	With(fields ...any) Logger
}

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, fields...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = &slogLogger{l: slog.Default()}
)

// GetLogger returns the library-wide logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the library-wide logger. Useful in tests together with
// TestLogger.
func SetLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// FromSlog wraps a *slog.Logger in the Logger interface.
func FromSlog(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}
