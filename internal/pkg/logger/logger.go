// Package logger builds the service-scoped zap logger every binary uses.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production zap logger tagged with the service name.
// LOG_LEVEL=debug switches on debug output; dev environments get the
// console encoder.
func New(service string) *zap.Logger {
	level := zapcore.InfoLevel
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "" || env == "dev" || env == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log.With(zap.String("service", service))
}
