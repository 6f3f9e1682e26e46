// Package redis хранит сессии токенов в Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gotodo/internal/account/domain/services"
	"gotodo/internal/account/ports/repositories"
	"gotodo/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodStore           = "Store"
	LogMethodFind            = "Find"
	LogMethodRevoke          = "Revoke"
	LogMethodRevokeAllExcept = "RevokeAllExcept"

	ErrorFailedToStore  = "failed to store session in redis"
	ErrorFailedToFind   = "failed to read session from redis"
	ErrorFailedToRevoke = "failed to revoke session in redis"
	ErrorFailedToList   = "failed to list user sessions in redis"
	ErrorExpiredSession = "session expires in the past"
)

// SessionRepository реализует repositories.SessionRepository.
//
// Ключи:
//
//	<prefix>session:<id>        -> user id, TTL = время жизни токена
//	<prefix>user_sessions:<uid> -> множество id сессий пользователя
type SessionRepository struct {
	client redis.Cmdable
	prefix string
}

// NewSessionRepository создает репозиторий сессий.
func NewSessionRepository(client redis.Cmdable, keyPrefix string) repositories.SessionRepository {
	return &SessionRepository{client: client, prefix: keyPrefix}
}

func (r *SessionRepository) sessionKey(id string) string {
	return r.prefix + "session:" + id
}

func (r *SessionRepository) userKey(userID string) string {
	return r.prefix + "user_sessions:" + userID
}

// Store сохраняет сессию до момента session.ExpiresAt.
func (r *SessionRepository) Store(ctx context.Context, session *services.Session) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodStore), zap.String("userID", session.UserID))

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		log.Error(ctx, ErrorExpiredSession)
		return fmt.Errorf("%s: %w", ErrorFailedToStore, services.ErrSessionNotFound)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(session.ID), session.UserID, ttl)
		pipe.SAdd(ctx, r.userKey(session.UserID), session.ID)
		pipe.Expire(ctx, r.userKey(session.UserID), ttl)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToStore, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToStore, err)
	}

	return nil
}

// Find возвращает живую сессию или services.ErrSessionNotFound.
func (r *SessionRepository) Find(ctx context.Context, sessionID string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodFind))

	userID, err := r.client.Get(ctx, r.sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debug(ctx, "session not found")
			return nil, services.ErrSessionNotFound
		}
		log.Error(ctx, ErrorFailedToFind, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToFind, err)
	}

	return &services.Session{ID: sessionID, UserID: userID}, nil
}

// Revoke удаляет одну сессию пользователя.
func (r *SessionRepository) Revoke(ctx context.Context, userID, sessionID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevoke), zap.String("userID", userID))

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.sessionKey(sessionID))
		pipe.SRem(ctx, r.userKey(userID), sessionID)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}

	return nil
}

// RevokeAllExcept удаляет все сессии пользователя, кроме keepSessionID.
func (r *SessionRepository) RevokeAllExcept(ctx context.Context, userID, keepSessionID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevokeAllExcept), zap.String("userID", userID))

	ids, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToList, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToList, err)
	}

	revoked := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != keepSessionID {
			revoked = append(revoked, id)
		}
	}
	if len(revoked) == 0 {
		return nil
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		members := make([]interface{}, 0, len(revoked))
		for _, id := range revoked {
			pipe.Del(ctx, r.sessionKey(id))
			members = append(members, id)
		}
		pipe.SRem(ctx, r.userKey(userID), members...)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}

	log.Info(ctx, "user sessions revoked", zap.Int("count", len(revoked)))
	return nil
}
