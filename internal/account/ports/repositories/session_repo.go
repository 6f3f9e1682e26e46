package repositories

import (
	"context"

	"gotodo/internal/account/domain/services"
)

// SessionRepository хранит серверные сессии, к которым привязаны токены.
type SessionRepository interface {
	Store(ctx context.Context, session *services.Session) error

	Find(ctx context.Context, sessionID string) (*services.Session, error)

	Revoke(ctx context.Context, userID, sessionID string) error

	RevokeAllExcept(ctx context.Context, userID, keepSessionID string) error
}
