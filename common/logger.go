package common

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger is the logging surface the modules write to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger adapts a *slog.Logger. A nil logger uses slog.Default().
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{l: l}
}

func (s *slogLogger) logf(level slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.Log(ctx, level, fmt.Sprintf(format, args...))
}

func (s *slogLogger) Debugf(format string, args ...interface{}) { s.logf(slog.LevelDebug, format, args...) }
func (s *slogLogger) Infof(format string, args ...interface{})  { s.logf(slog.LevelInfo, format, args...) }
func (s *slogLogger) Warnf(format string, args ...interface{})  { s.logf(slog.LevelWarn, format, args...) }
func (s *slogLogger) Errorf(format string, args ...interface{}) { s.logf(slog.LevelError, format, args...) }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...interface{}) {}
func (NopLogger) Infof(format string, args ...interface{})  {}
func (NopLogger) Warnf(format string, args ...interface{})  {}
func (NopLogger) Errorf(format string, args ...interface{}) {}
