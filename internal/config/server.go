package config

import (
	"fmt"
	"time"

	"gotodo/pkg/logger"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"TODO_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"TODO_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"TODO_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"TODO_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	BodyLimit    int           `yaml:"body_limit" env:"TODO_HTTP_BODY_LIMIT" env-default:"1048576"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"TODO_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"TODO_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment переводит строку режима в logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// ShutdownConfig содержит настройки для graceful shutdown.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"TODO_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает timeout как time.Duration.
func (s *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// TelemetryConfig содержит настройки экспорта OpenTelemetry.
// Пустой OTLPEndpoint отключает экспорт.
type TelemetryConfig struct {
	OTLPEndpoint   string        `yaml:"otlp_endpoint" env:"TODO_OTLP_ENDPOINT" env-default:""`
	Environment    string        `yaml:"environment" env:"TODO_ENVIRONMENT" env-default:"local"`
	ExportInterval time.Duration `yaml:"export_interval" env:"TODO_OTLP_EXPORT_INTERVAL" env-default:"10s"`
}
