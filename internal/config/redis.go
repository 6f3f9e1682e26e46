package config

import (
	"time"

	"gotodo/pkg/db/redis"
	"gotodo/pkg/resilience"
)

// RedisConfig представляет конфигурацию Redis, в котором хранятся сессии.
type RedisConfig struct {
	Addr         string        `yaml:"addr" env:"TODO_REDIS_ADDR" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"TODO_REDIS_PASSWORD" env-default:""`
	DB           int           `yaml:"db" env:"TODO_REDIS_DB" env-default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"TODO_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle      int           `yaml:"min_idle" env:"TODO_REDIS_MIN_IDLE" env-default:"2"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"TODO_REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"TODO_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"TODO_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	ConnectTries int           `yaml:"connect_tries" env:"TODO_REDIS_CONNECT_TRIES" env-default:"5"`
	KeyPrefix    string        `yaml:"key_prefix" env:"TODO_REDIS_KEY_PREFIX" env-default:"gotodo:"`
}

// ClientConfig преобразует настройки в конфигурацию клиента pkg/db/redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdle,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

// GetRetryConfig возвращает параметры повторного подключения при старте.
func (c *RedisConfig) GetRetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: c.ConnectTries}
}
