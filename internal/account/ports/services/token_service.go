package services

import (
	"context"

	"gotodo/internal/account/domain/services"
)

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	GenerateToken(ctx context.Context, userID, username string) (*services.IssuedToken, error)

	ValidateToken(ctx context.Context, token string) (*services.JWTClaims, error)
}
