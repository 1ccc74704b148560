// Package logging builds the zap loggers used by datagen.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging across datagen.
const (
	FieldGenerator = "generator"
	FieldSequence  = "sequence"
	FieldState     = "state"
	FieldCount     = "count"
	FieldSize      = "size"
	FieldSeed      = "seed"
	FieldWorkers   = "workers"
	FieldFile      = "file"
	FieldAddress   = "address"
	FieldError     = "error"
)

// New creates a logger writing to stderr. The level is one of zap's level
// names ("debug", "info", "warn", "error"); an unknown level is an error.
func New(level string, json bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	if json {
		cfg = zap.NewProductionConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// Generator is a shorthand for the generator name field.
func Generator(name string) zap.Field {
	return zap.String(FieldGenerator, name)
}
