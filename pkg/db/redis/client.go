package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gotodo/pkg/logger"
	"gotodo/pkg/resilience"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"
	LogClosing    = "closing Redis connection"

	ErrPingRedis  = "failed to connect to Redis"
	ErrCloseRedis = "failed to close Redis connection"
)

// Client оборачивает клиент Redis.
type Client struct {
	client *redis.Client
}

// NewClient создает клиент и проверяет соединение, повторяя попытки по retryCfg.
func NewClient(ctx context.Context, cfg *Config, retryCfg resilience.RetryConfig) (*Client, error) {
	log := logger.Log(ctx).With(zap.String("addr", cfg.Addr))
	log.Info(ctx, LogConnecting)

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	retry := resilience.NewRetry("redis-ping", retryCfg)
	if err := retry.Execute(ctx, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		_ = rdb.Close()
		log.Error(ctx, ErrPingRedis, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingRedis, err)
	}

	log.Info(ctx, LogConnected)
	return &Client{client: rdb}, nil
}

// Ping проверяет доступность Redis.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrPingRedis, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *Client) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrCloseRedis, err)
	}
	return nil
}

// RawClient возвращает базовый Redis клиент для более сложных операций.
func (c *Client) RawClient() *redis.Client {
	return c.client
}
