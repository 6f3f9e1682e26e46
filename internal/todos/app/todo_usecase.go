// Package app реализует сценарии работы с задачами.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gotodo/internal/todos/domain/entities"
	"gotodo/internal/todos/ports/api"
	"gotodo/internal/todos/ports/repositories"
	"gotodo/pkg/logger"
)

// Константы для логирования и контекста ошибок.
const (
	methodList    = "TodoUseCase.List"
	methodCreate  = "TodoUseCase.Create"
	methodGet     = "TodoUseCase.Get"
	methodUpdate  = "TodoUseCase.Update"
	methodReplace = "TodoUseCase.Replace"
	methodDelete  = "TodoUseCase.Delete"

	errCtxValidating = "validating todo"
	errCtxListing    = "listing todos"
	errCtxCreating   = "creating todo"
	errCtxFinding    = "finding todo"
	errCtxModifying  = "modifying todo"
	errCtxDeleting   = "deleting todo"
	errCtxOwner      = "resolving owner"
)

// ErrEmptyOwner возвращается, если операция вызвана без идентичности.
var ErrEmptyOwner = errors.New("owner ID cannot be empty")

// TodoUseCaseImpl реализует api.TodoUseCase.
type TodoUseCaseImpl struct {
	repo repositories.TodoRepository
}

// NewTodoUseCase создает сервис задач.
func NewTodoUseCase(repo repositories.TodoRepository) api.TodoUseCase {
	return &TodoUseCaseImpl{repo: repo}
}

// List возвращает все задачи владельца.
func (uc *TodoUseCaseImpl) List(ctx context.Context, ownerID string) ([]*entities.Todo, error) {
	log := logger.Log(ctx).With(zap.String("method", methodList), zap.String("ownerID", ownerID))

	if ownerID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxOwner, ErrEmptyOwner)
	}

	todos, err := uc.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListing, err)
	}

	log.Debug(ctx, "todos listed", zap.Int("count", len(todos)))
	return todos, nil
}

// Create проверяет поля и сохраняет задачу от имени владельца.
func (uc *TodoUseCaseImpl) Create(ctx context.Context, ownerID string, input entities.TodoInput) (*entities.Todo, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate), zap.String("ownerID", ownerID))

	if ownerID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxOwner, ErrEmptyOwner)
	}

	input = input.Normalize()
	if err := input.Validate(true); err != nil {
		log.Debug(ctx, "todo validation failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	todo := &entities.Todo{OwnerID: ownerID}
	input.Replace(todo)

	created, err := uc.repo.Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreating, err)
	}

	log.Info(ctx, "todo created", zap.String("todoID", created.ID))
	return created, nil
}

// Get возвращает задачу владельца; чужая и несуществующая задачи неразличимы.
func (uc *TodoUseCaseImpl) Get(ctx context.Context, ownerID, id string) (*entities.Todo, error) {
	id, err := checkIDs(ownerID, id)
	if err != nil {
		return nil, err
	}

	todo, err := uc.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFinding, err)
	}

	logger.Log(ctx).Debug(ctx, "todo retrieved",
		zap.String("method", methodGet), zap.String("ownerID", ownerID), zap.String("todoID", id))
	return todo, nil
}

// Update применяет только переданные поля.
func (uc *TodoUseCaseImpl) Update(ctx context.Context, ownerID, id string, input entities.TodoInput) (*entities.Todo, error) {
	return uc.modify(ctx, methodUpdate, ownerID, id, input, false)
}

// Replace перезаписывает все изменяемые поля; title обязателен.
func (uc *TodoUseCaseImpl) Replace(ctx context.Context, ownerID, id string, input entities.TodoInput) (*entities.Todo, error) {
	return uc.modify(ctx, methodReplace, ownerID, id, input, true)
}

// Delete удаляет задачу владельца.
func (uc *TodoUseCaseImpl) Delete(ctx context.Context, ownerID, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.String("ownerID", ownerID))

	id, err := checkIDs(ownerID, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id, ownerID); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeleting, err)
	}

	log.Info(ctx, "todo deleted", zap.String("todoID", id))
	return nil
}

func (uc *TodoUseCaseImpl) modify(
	ctx context.Context,
	method, ownerID, id string,
	input entities.TodoInput,
	replace bool,
) (*entities.Todo, error) {
	id, err := checkIDs(ownerID, id)
	if err != nil {
		return nil, err
	}

	log := logger.Log(ctx).With(zap.String("method", method), zap.String("ownerID", ownerID), zap.String("todoID", id))

	input = input.Normalize()
	if err := input.Validate(replace); err != nil {
		log.Debug(ctx, "todo validation failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	updated, err := uc.repo.Modify(ctx, id, ownerID, func(todo *entities.Todo) error {
		if replace {
			input.Replace(todo)
		} else {
			input.Apply(todo)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxModifying, err)
	}

	log.Info(ctx, "todo updated", zap.Bool("replace", replace))
	return updated, nil
}

// checkIDs отклоняет пустого владельца и идентификаторы, которые не могут быть UUID задачи.
// Возвращает идентификатор в канонической форме xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
func checkIDs(ownerID, id string) (string, error) {
	if ownerID == "" {
		return "", fmt.Errorf("%s: %w", errCtxOwner, ErrEmptyOwner)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxFinding, entities.ErrTodoNotFound)
	}
	return parsed.String(), nil
}
