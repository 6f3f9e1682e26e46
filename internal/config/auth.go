package config

import (
	"errors"
	"fmt"
	"time"
)

// Поддерживаемые алгоритмы хэширования паролей.
const (
	HasherArgon2id = "argon2id"
	HasherBcrypt   = "bcrypt"
)

// Ошибки проверки AuthConfig.
var (
	ErrEmptySecretKey    = errors.New("token secret key must not be empty")
	ErrUnknownHasher     = errors.New("unknown password hasher")
	ErrNonPositiveTTL    = errors.New("token TTL must be positive")
	ErrInvalidArgonParam = errors.New("argon2 parameters must be positive")
)

// AuthConfig содержит настройки токенов и хэширования паролей.
type AuthConfig struct {
	SecretKey      string        `yaml:"secret_key" env:"TODO_AUTH_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TokenTTL       time.Duration `yaml:"token_ttl" env:"TODO_AUTH_TOKEN_TTL" env-default:"24h"`
	PasswordHasher string        `yaml:"password_hasher" env:"TODO_AUTH_PASSWORD_HASHER" env-default:"argon2id"`
	BCryptCost     int           `yaml:"bcrypt_cost" env:"TODO_AUTH_BCRYPT_COST" env-default:"10"`
	Argon2Time     uint32        `yaml:"argon2_time" env:"TODO_AUTH_ARGON2_TIME" env-default:"1"`
	Argon2MemoryKB uint32        `yaml:"argon2_memory_kb" env:"TODO_AUTH_ARGON2_MEMORY_KB" env-default:"65536"`
	Argon2Threads  uint8         `yaml:"argon2_threads" env:"TODO_AUTH_ARGON2_THREADS" env-default:"2"`
}

// Validate проверяет согласованность настроек.
func (c *AuthConfig) Validate() error {
	if c.SecretKey == "" {
		return ErrEmptySecretKey
	}
	if c.TokenTTL <= 0 {
		return ErrNonPositiveTTL
	}
	switch c.PasswordHasher {
	case HasherArgon2id:
		if c.Argon2Time == 0 || c.Argon2MemoryKB == 0 || c.Argon2Threads == 0 {
			return ErrInvalidArgonParam
		}
	case HasherBcrypt:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHasher, c.PasswordHasher)
	}
	return nil
}
