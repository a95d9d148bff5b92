package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
)

var _ primary.Logger = (*ZapLogger)(nil)

// ZapLogger implements the Logger interface with zap
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// NewZapLogger creates a production logger at the given level ("debug", "info", ...)
func NewZapLogger(level string) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return NewLogger(logger), nil
}

// NewLogger wraps an existing zap logger, e.g. zaptest.NewLogger(t)
func NewLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{
		logger: logger.Sugar(),
	}
}

// NewNop discards everything
func NewNop() *ZapLogger {
	return NewLogger(zap.NewNop())
}

// With returns a child logger carrying the given key/value pairs
func (l *ZapLogger) With(args ...interface{}) *ZapLogger {
	return &ZapLogger{logger: l.logger.With(args...)}
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// Info logs an info message
func (l *ZapLogger) Info(msg string, args ...interface{}) {
	l.logger.Infow(msg, args...)
}

// Error logs an error message
func (l *ZapLogger) Error(msg string, args ...interface{}) {
	l.logger.Errorw(msg, args...)
}

// Debug logs a debug message
func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	l.logger.Debugw(msg, args...)
}

// Warn logs a warning message
func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	l.logger.Warnw(msg, args...)
}
