package api

import (
	"context"

	"gotodo/internal/account/domain/entities"
	"gotodo/internal/account/domain/services"
)

// AccountUseCase определяет основной порт для операций с учетными записями.
type AccountUseCase interface {
	Register(ctx context.Context, username, email, password string) (*entities.User, error)

	IssueToken(ctx context.Context, username, password string) (*services.IssuedToken, error)

	RevokeToken(ctx context.Context, identity entities.Identity) error

	GetOwnProfile(ctx context.Context, identity entities.Identity) (*entities.User, error)

	UpdateOwnProfile(ctx context.Context, identity entities.Identity, update entities.ProfileUpdate) (*entities.User, error)
}

// Authenticator превращает bearer-токен в идентичность вызывающего.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.Identity, error)
}
