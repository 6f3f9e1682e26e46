// Package repositories defines repository interfaces for the todo service.
package repositories

import (
	"context"

	"gotodo/internal/todos/domain/entities"
)

// TodoRepository хранит задачи. Каждый метод ограничен задачами ownerID.
type TodoRepository interface {
	List(ctx context.Context, ownerID string) ([]*entities.Todo, error)

	Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error)

	FindByID(ctx context.Context, id, ownerID string) (*entities.Todo, error)

	// Modify блокирует строку, передает задачу в apply и сохраняет результат
	// в одной транзакции. Ошибка apply откатывает транзакцию.
	Modify(ctx context.Context, id, ownerID string, apply func(*entities.Todo) error) (*entities.Todo, error)

	Delete(ctx context.Context, id, ownerID string) error
}
