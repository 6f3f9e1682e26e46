// Package config содержит конфигурацию to-do API.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "gotodo/pkg/config"
	"gotodo/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "gotodo"

	LogConfigLoaded     = "configuration summary"
	ErrFailedLoadConfig = "failed to load configuration"
	ErrInvalidConfig    = "invalid configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// Load загружает конфигурацию из envPath (если файл есть) и переменных окружения.
func Load(ctx context.Context, envPath string) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Auth.Validate(); err != nil {
		log.Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("redis_addr", cfg.Redis.Addr),
		zap.String("password_hasher", cfg.Auth.PasswordHasher),
		zap.Duration("token_ttl", cfg.Auth.TokenTTL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.Bool("telemetry_enabled", cfg.Telemetry.OTLPEndpoint != ""))

	return cfg, nil
}
