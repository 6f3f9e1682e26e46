package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/config"
	"gotodo/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, config.HasherArgon2id, cfg.Auth.PasswordHasher)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TODO_HTTP_PORT", "9000")
	t.Setenv("TODO_POSTGRES_HOST", "db")
	t.Setenv("TODO_AUTH_PASSWORD_HASHER", "bcrypt")
	t.Setenv("TODO_AUTH_TOKEN_TTL", "1h")
	t.Setenv("TODO_LOGGER_MODE", "production")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, config.HasherBcrypt, cfg.Auth.PasswordHasher)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
}

func TestLoad_InvalidAuth(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		target error
	}{
		{
			name:   "unknown hasher",
			env:    map[string]string{"TODO_AUTH_PASSWORD_HASHER": "md5"},
			target: config.ErrUnknownHasher,
		},
		{
			name:   "non-positive ttl",
			env:    map[string]string{"TODO_AUTH_TOKEN_TTL": "0s"},
			target: config.ErrNonPositiveTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load(context.Background(), "")
			require.ErrorIs(t, err, tt.target)
			assert.Nil(t, cfg)
		})
	}
}

func TestPostgresConfig_URLs(t *testing.T) {
	cfg := config.PostgresConfig{
		Host:          "db",
		Port:          5433,
		User:          "todo",
		Password:      "p@ss word",
		Database:      "todo",
		SSLMode:       "disable",
		MigrationsDir: "/srv/migrations",
	}

	assert.Equal(t, "host=db port=5433 user=todo password=p@ss word dbname=todo sslmode=disable", cfg.GetDSN())
	assert.Equal(t, "postgres://todo:p%40ss%20word@db:5433/todo?sslmode=disable", cfg.GetConnectionURL())

	migrations, err := cfg.GetMigrationsURL()
	require.NoError(t, err)
	assert.Equal(t, "file:///srv/migrations", migrations)
}
