package repositories

import (
	"context"

	"gotodo/internal/account/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователем.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)
}
