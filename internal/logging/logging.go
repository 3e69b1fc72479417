// Package logging adapts zap to the small logger interfaces the codelab
// packages accept.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger. It satisfies the Info/Warn/Error
// interfaces of the runtime, session, exec and mcpserver packages and the
// Logf interface of the code package.
type Logger struct {
	z *zap.SugaredLogger
}

// New builds a production logger writing JSON to stderr at level.
// An empty level means "info". verbose forces debug.
func New(level string, verbose bool) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	z, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return FromZap(z), nil
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{z: z.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return FromZap(zap.NewNop())
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func (l *Logger) Debug(msg string, args ...any) { l.z.Debugw(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.z.Infow(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.z.Warnw(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.z.Errorw(msg, args...) }

// Logf logs a formatted message at debug level.
func (l *Logger) Logf(format string, args ...any) {
	l.z.Debugf(format, args...)
}

// Named returns a child logger with name appended to the logger name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{z: l.z.Named(name)}
}

// Zap returns the underlying logger.
func (l *Logger) Zap() *zap.Logger {
	return l.z.Desugar()
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
