package configs

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logOnce sync.Once
	logger  *zap.Logger
)

// Log mengembalikan logger global; dibangun sekali dari LOG_LEVEL & APP_ENV.
func Log() *zap.Logger {
	logOnce.Do(func() {
		l, err := buildLogger(GetEnv("APP_ENV"), GetEnv("LOG_LEVEL", "info"))
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	})
	return logger
}

// SetLogger mengganti logger global (dipakai CLI --verbose dan test).
func SetLogger(l *zap.Logger) {
	logOnce.Do(func() {})
	logger = l
}

func buildLogger(env, level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env != "production" {
		cfg = zap.NewDevelopmentConfig()
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
