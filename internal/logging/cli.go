package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCLILogger builds a zap.Logger for command-facing (stderr) output,
// separate from the internal category loggers above — mirroring the
// teacher's split between an internal file-based telemetry logger and
// a zap.Logger used purely for CLI-visible messages (cmd/nerd/main.go).
func NewCLILogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build cli logger: %w", err)
	}
	return logger, nil
}
