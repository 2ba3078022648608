// Package logging builds the process logger.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON logger for environment and returns it with a handle that
// changes its level at runtime. An empty level means debug in development
// and local environments and info elsewhere.
func New(environment, level string) (*zap.Logger, zap.AtomicLevel, error) {
	atomic, err := resolveLevel(environment, level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	cfg := configFor(environment)
	cfg.Level = atomic
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, atomic, nil
}

func isDevelopment(environment string) bool {
	return environment == "development" || environment == "local"
}

func resolveLevel(environment, level string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(level) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(level); err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("invalid level %q: %w", level, err)
		}
		return zap.NewAtomicLevelAt(parsed), nil
	}
	if isDevelopment(environment) {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	}
	return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
}

func configFor(environment string) zap.Config {
	cfg := zap.NewProductionConfig()
	if isDevelopment(environment) {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
