package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps l. A nil l uses slog.Default() at call time.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

func (s *slogLogger) logger() *slog.Logger {
	if s.l == nil {
		return slog.Default()
	}
	return s.l
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.logger().Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.logger().Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.logger().Warn(msg, fields...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.logger().Error(msg, fields...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.logger().With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.logger().Enabled(ctx, slog.Level(level))
}

var global atomic.Value // Logger

// SetLogger replaces the package-level logger returned by GetLogger.
func SetLogger(l Logger) {
	if l == nil {
		l = NewSlogLogger(nil)
	}
	global.Store(&l)
}

// GetLogger returns the package-level logger. Until SetLogger is called it
// writes through slog.Default(), so SetupLogger takes effect immediately.
func GetLogger() Logger {
	if l, ok := global.Load().(*Logger); ok {
		return *l
	}
	return NewSlogLogger(nil)
}

// GetLoggerWithName returns GetLogger() tagged with ComponentKey.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}
