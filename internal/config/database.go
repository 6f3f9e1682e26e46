package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"gotodo/pkg/resilience"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host          string        `yaml:"host" env:"TODO_POSTGRES_HOST" env-default:"localhost"`
	Port          int           `yaml:"port" env:"TODO_POSTGRES_PORT" env-default:"5432"`
	User          string        `yaml:"user" env:"TODO_POSTGRES_USER" env-default:"postgres"`
	Password      string        `yaml:"password" env:"TODO_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string        `yaml:"database" env:"TODO_POSTGRES_DB" env-default:"todo"`
	SSLMode       string        `yaml:"ssl_mode" env:"TODO_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn       int           `yaml:"min_conn" env:"TODO_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int           `yaml:"max_conn" env:"TODO_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir string        `yaml:"migrations_dir" env:"TODO_POSTGRES_MIGRATIONS_DIR" env-default:"migrations"`
	ConnectTries  int           `yaml:"connect_tries" env:"TODO_POSTGRES_CONNECT_TRIES" env-default:"5"`
	ConnectDelay  time.Duration `yaml:"connect_delay" env:"TODO_POSTGRES_CONNECT_DELAY" env-default:"500ms"`
}

// GetDSN возвращает строку подключения к PostgreSQL для pgx.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

// GetMigrationsURL возвращает file:// URL каталога миграций.
func (p *PostgresConfig) GetMigrationsURL() (string, error) {
	dir := p.MigrationsDir
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve migrations dir: %w", err)
		}
		dir = abs
	}
	return "file://" + filepath.ToSlash(dir), nil
}

// GetRetryConfig возвращает параметры повторного подключения при старте.
func (p *PostgresConfig) GetRetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:    p.ConnectTries,
		InitialBackoff: p.ConnectDelay,
	}
}
