package api

import (
	"context"

	"gotodo/internal/todos/domain/entities"
)

// TodoUseCase определяет операции над задачами вызывающего пользователя.
type TodoUseCase interface {
	List(ctx context.Context, ownerID string) ([]*entities.Todo, error)

	Create(ctx context.Context, ownerID string, input entities.TodoInput) (*entities.Todo, error)

	Get(ctx context.Context, ownerID, id string) (*entities.Todo, error)

	Update(ctx context.Context, ownerID, id string, input entities.TodoInput) (*entities.Todo, error)

	Replace(ctx context.Context, ownerID, id string, input entities.TodoInput) (*entities.Todo, error)

	Delete(ctx context.Context, ownerID, id string) error
}
