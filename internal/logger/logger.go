// Package logger builds the structured zap logger used by every stage of a run.
//
// Logs go to stderr so that stdout carries only the operator diagnostics.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/napalu/renew-locales/internal/errors"
)

// Formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing at level (debug, info, warn, error) in the given format.
// An empty level means info and an empty format means console.
func New(level, format string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}

	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.ErrInvalidLogConfiguration.Wrap(err)
	}

	var cfg zap.Config
	switch format {
	case FormatConsole, "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableStacktrace = true
	case FormatJSON:
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	default:
		return nil, errors.ErrInvalidLogConfiguration
	}
	cfg.Level = atomicLevel
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, errors.ErrInvalidLogConfiguration.Wrap(err)
	}
	return l, nil
}
