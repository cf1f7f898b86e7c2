package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerOption func(*zap.Config)

func WithLevel(level string) LoggerOption {
	return func(cfg *zap.Config) {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(level)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(l)
		}
	}
}

func WithOutput(paths ...string) LoggerOption {
	return func(cfg *zap.Config) {
		cfg.OutputPaths = paths
	}
}

// NewLogger builds a production zap logger writing to stderr.
func NewLogger(options ...LoggerOption) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.Sampling = nil

	for _, option := range options {
		option(&config)
	}

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("could not build logger: %w", err)
	}
	return l, nil
}

// MustLogger falls back to a no-op logger so a bad log config never stops the tool.
func MustLogger(options ...LoggerOption) *zap.Logger {
	l, err := NewLogger(options...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return zap.NewNop()
	}
	return l
}
