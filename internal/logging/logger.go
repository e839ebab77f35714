// Package logging builds the zap loggers used across taskbridge.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a production logger. When debug is true the level is
// lowered to Debug so the intent pipeline and store calls are traced.
func New(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewNop returns a no-op logger for tests and callers that do not care.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
