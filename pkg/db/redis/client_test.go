package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/pkg/db/redis"
	"gotodo/pkg/resilience"
)

func singleAttempt() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: 1, InitialBackoff: time.Millisecond}
}

func TestNewClient_Success(t *testing.T) {
	s := miniredis.RunT(t)
	ctx := context.Background()

	cfg := redis.DefaultConfig()
	cfg.Addr = s.Addr()

	client, err := redis.NewClient(ctx, cfg, singleAttempt())
	require.NoError(t, err)
	require.NotNil(t, client)

	require.NoError(t, client.Ping(ctx))
	require.NoError(t, client.RawClient().Set(ctx, "k", "v", 0).Err())
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	assert.NoError(t, client.Close(ctx))
}

func TestNewClient_ConnectionFailure(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	cfg := redis.DefaultConfig()
	cfg.Addr = addr
	cfg.DialTimeout = 100 * time.Millisecond

	client, err := redis.NewClient(context.Background(), cfg, singleAttempt())
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), redis.ErrPingRedis)
}

func TestPing_AfterServerStops(t *testing.T) {
	s := miniredis.RunT(t)
	ctx := context.Background()

	cfg := redis.DefaultConfig()
	cfg.Addr = s.Addr()
	cfg.DialTimeout = 100 * time.Millisecond
	cfg.ReadTimeout = 100 * time.Millisecond

	client, err := redis.NewClient(ctx, cfg, singleAttempt())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(ctx) })

	s.Close()

	assert.Error(t, client.Ping(ctx))
}
