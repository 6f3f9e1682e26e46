// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"gotodo/internal/todos/domain/entities"
	"gotodo/internal/todos/ports/repositories"
	"gotodo/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

const todoColumns = `id, owner_id, title, description, completed, due_date, created_date`

// TodoRepository реализует интерфейс repositories.TodoRepository.
// Владелец всегда входит в условие WHERE.
type TodoRepository struct {
	pool PgxPoolInterface
}

// NewTodoRepository создает новый репозиторий задач.
func NewTodoRepository(pool PgxPoolInterface) repositories.TodoRepository {
	return &TodoRepository{pool: pool}
}

// List возвращает задачи владельца по убыванию title, затем по id.
func (r *TodoRepository) List(ctx context.Context, ownerID string) ([]*entities.Todo, error) {
	log := logger.Log(ctx).With(zap.String("method", "TodoRepository.List"), zap.String("ownerID", ownerID))
	log.Debug(ctx, "listing todos")

	rows, err := r.pool.Query(ctx,
		`SELECT `+todoColumns+`
         FROM todos
         WHERE owner_id = $1
         ORDER BY title DESC, id`,
		ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to list todos", zap.Error(err))
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*entities.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			log.Error(ctx, "failed to scan todo", zap.Error(err))
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return todos, nil
}

// Create сохраняет новую задачу; created_date выставляет база.
func (r *TodoRepository) Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	log := logger.Log(ctx).With(zap.String("method", "TodoRepository.Create"), zap.String("ownerID", todo.OwnerID))
	log.Debug(ctx, "creating todo")

	created, err := scanTodo(r.pool.QueryRow(ctx,
		`INSERT INTO todos (owner_id, title, description, completed, due_date)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING `+todoColumns,
		todo.OwnerID, todo.Title, todo.Description, todo.Completed, todo.DueDate,
	))
	if err != nil {
		log.Error(ctx, "failed to create todo", zap.Error(err))
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	log.Debug(ctx, "todo created", zap.String("todoID", created.ID))
	return created, nil
}

// FindByID получает задачу по ID и владельцу.
func (r *TodoRepository) FindByID(ctx context.Context, id, ownerID string) (*entities.Todo, error) {
	log := logger.Log(ctx).With(zap.String("method", "TodoRepository.FindByID"), zap.String("ownerID", ownerID))

	todo, err := scanTodo(r.pool.QueryRow(ctx,
		`SELECT `+todoColumns+`
         FROM todos
         WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "todo not found", zap.String("todoID", id))
			return nil, entities.ErrTodoNotFound
		}
		log.Error(ctx, "failed to get todo", zap.Error(err))
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// Modify изменяет задачу под блокировкой строки.
func (r *TodoRepository) Modify(
	ctx context.Context,
	id, ownerID string,
	apply func(*entities.Todo) error,
) (result *entities.Todo, err error) {
	log := logger.Log(ctx).With(
		zap.String("method", "TodoRepository.Modify"),
		zap.String("ownerID", ownerID),
		zap.String("todoID", id),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Error(ctx, "failed to rollback transaction", zap.Error(rbErr))
		}
	}()

	todo, err := scanTodo(tx.QueryRow(ctx,
		`SELECT `+todoColumns+`
         FROM todos
         WHERE id = $1 AND owner_id = $2
         FOR UPDATE`,
		id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "todo not found")
			return nil, entities.ErrTodoNotFound
		}
		log.Error(ctx, "failed to lock todo", zap.Error(err))
		return nil, fmt.Errorf("failed to lock todo: %w", err)
	}

	if err = apply(todo); err != nil {
		return nil, err
	}

	updated, err := scanTodo(tx.QueryRow(ctx,
		`UPDATE todos
         SET title = $3, description = $4, completed = $5, due_date = $6
         WHERE id = $1 AND owner_id = $2
         RETURNING `+todoColumns,
		id, ownerID, todo.Title, todo.Description, todo.Completed, todo.DueDate,
	))
	if err != nil {
		log.Error(ctx, "failed to update todo", zap.Error(err))
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		log.Error(ctx, "failed to commit transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// Delete удаляет задачу владельца.
func (r *TodoRepository) Delete(ctx context.Context, id, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", "TodoRepository.Delete"), zap.String("ownerID", ownerID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM todos WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete todo", zap.Error(err))
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "todo not found or not owned by user", zap.String("todoID", id))
		return entities.ErrTodoNotFound
	}

	return nil
}

func scanTodo(row pgx.Row) (*entities.Todo, error) {
	var todo entities.Todo
	if err := row.Scan(
		&todo.ID,
		&todo.OwnerID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.DueDate,
		&todo.CreatedDate,
	); err != nil {
		return nil, err
	}
	return &todo, nil
}
