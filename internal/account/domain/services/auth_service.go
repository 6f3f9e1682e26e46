package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("unable to authenticate with provided credentials")
	ErrUnauthenticated       = errors.New("authentication credentials were not provided or are invalid")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// MsgInvalidCredentials - сообщение, возвращаемое клиенту при неудачном входе.
const MsgInvalidCredentials = "Unable to authenticate with provided credentials"

// IssuedToken представляет выданный токен доступа.
type IssuedToken struct {
	UserID    string
	Username  string
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// Session описывает серверную сессию, к которой привязан токен.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// ErrSessionNotFound возвращается, когда сессия истекла или отозвана.
var ErrSessionNotFound = errors.New("session not found")
