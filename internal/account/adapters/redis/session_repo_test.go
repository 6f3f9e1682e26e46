package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/account/adapters/redis"
	"gotodo/internal/account/domain/services"
	"gotodo/internal/account/ports/repositories"
)

const keyPrefix = "test:"

func newRepo(t *testing.T) (*miniredis.Miniredis, repositories.SessionRepository) {
	t.Helper()

	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return s, redis.NewSessionRepository(client, keyPrefix)
}

func session(id, userID string) *services.Session {
	return &services.Session{ID: id, UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
}

func TestSessionRepository_StoreAndFind(t *testing.T) {
	s, repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, session("sess-1", "user-1")))

	found, err := repo.Find(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", found.ID)
	assert.Equal(t, "user-1", found.UserID)

	assert.True(t, s.Exists(keyPrefix+"session:sess-1"))
	assert.Greater(t, s.TTL(keyPrefix+"session:sess-1"), time.Duration(0))

	members, err := s.Members(keyPrefix + "user_sessions:user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-1"}, members)
}

func TestSessionRepository_StoreExpired(t *testing.T) {
	_, repo := newRepo(t)

	err := repo.Store(context.Background(), &services.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	require.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestSessionRepository_FindExpired(t *testing.T) {
	s, repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, session("sess-1", "user-1")))
	s.FastForward(2 * time.Hour)

	_, err := repo.Find(ctx, "sess-1")
	require.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestSessionRepository_Revoke(t *testing.T) {
	s, repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, session("sess-1", "user-1")))
	require.NoError(t, repo.Store(ctx, session("sess-2", "user-1")))

	require.NoError(t, repo.Revoke(ctx, "user-1", "sess-1"))

	_, err := repo.Find(ctx, "sess-1")
	require.ErrorIs(t, err, services.ErrSessionNotFound)

	_, err = repo.Find(ctx, "sess-2")
	require.NoError(t, err)

	members, err := s.Members(keyPrefix + "user_sessions:user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-2"}, members)
}

func TestSessionRepository_RevokeAllExcept(t *testing.T) {
	_, repo := newRepo(t)
	ctx := context.Background()

	for _, id := range []string{"sess-1", "sess-2", "sess-3"} {
		require.NoError(t, repo.Store(ctx, session(id, "user-1")))
	}
	require.NoError(t, repo.Store(ctx, session("other", "user-2")))

	require.NoError(t, repo.RevokeAllExcept(ctx, "user-1", "sess-2"))

	_, err := repo.Find(ctx, "sess-1")
	require.ErrorIs(t, err, services.ErrSessionNotFound)
	_, err = repo.Find(ctx, "sess-3")
	require.ErrorIs(t, err, services.ErrSessionNotFound)

	kept, err := repo.Find(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, "user-1", kept.UserID)

	_, err = repo.Find(ctx, "other")
	require.NoError(t, err, "sessions of other users stay intact")
}

func TestSessionRepository_RevokeAllExceptNoSessions(t *testing.T) {
	_, repo := newRepo(t)

	require.NoError(t, repo.RevokeAllExcept(context.Background(), "nobody", ""))
}

func TestSessionRepository_ServerDown(t *testing.T) {
	s, repo := newRepo(t)
	s.Close()

	_, err := repo.Find(context.Background(), "sess-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrSessionNotFound)
}
