// Package todos содержит HTTP-обработчики для управления задачами.
package todos

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/gateway/adapters/http/middleware"
	"gotodo/internal/gateway/adapters/http/response"
	"gotodo/internal/gateway/app/dto"
	"gotodo/internal/todos/domain/entities"
	"gotodo/internal/todos/ports/api"
	"gotodo/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListTodos   = "handling list todos request"
	LogHandlerCreateTodo  = "handling create todo request"
	LogHandlerGetTodo     = "handling get todo request"
	LogHandlerUpdateTodo  = "handling update todo request"
	LogHandlerReplaceTodo = "handling replace todo request"
	LogHandlerDeleteTodo  = "handling delete todo request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgServeFailed        = "failed to serve todo request"

	// ParamID - имя параметра маршрута с идентификатором задачи.
	ParamID = "id"
)

// Handler обработчик HTTP-запросов для работы с задачами.
type Handler struct {
	todos api.TodoUseCase
}

// NewHandler создает новый экземпляр обработчика задач.
func NewHandler(todos api.TodoUseCase) *Handler {
	return &Handler{todos: todos}
}

// List обрабатывает GET /todos/.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx, log, ownerID, ok := h.begin(ctx, "Handler.List", LogHandlerListTodos)
	if !ok {
		return unauthorized(ctx)
	}

	todos, err := h.todos.List(requestCtx, ownerID)
	if err != nil {
		log.Error(requestCtx, ErrMsgServeFailed, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewTodoListResponse(todos))
}

// Create обрабатывает POST /todos/.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx, log, ownerID, ok := h.begin(ctx, "Handler.Create", LogHandlerCreateTodo)
	if !ok {
		return unauthorized(ctx)
	}

	var req dto.TodoRequest
	if err := response.DecodeBody(ctx, &req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, err)
	}

	todo, err := h.todos.Create(requestCtx, ownerID, req.ToInput())
	if err != nil {
		log.Debug(requestCtx, ErrMsgServeFailed, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, dto.NewTodoResponse(todo))
}

// Get обрабатывает GET /todos/{id}/.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx, log, ownerID, ok := h.begin(ctx, "Handler.Get", LogHandlerGetTodo)
	if !ok {
		return unauthorized(ctx)
	}

	todo, err := h.todos.Get(requestCtx, ownerID, ctx.Params(ParamID))
	if err != nil {
		log.Debug(requestCtx, ErrMsgServeFailed, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewTodoResponse(todo))
}

// Update обрабатывает PATCH /todos/{id}/.
func (h *Handler) Update(ctx fiber.Ctx) error {
	return h.change(ctx, "Handler.Update", LogHandlerUpdateTodo, h.todos.Update)
}

// Replace обрабатывает PUT /todos/{id}/.
func (h *Handler) Replace(ctx fiber.Ctx) error {
	return h.change(ctx, "Handler.Replace", LogHandlerReplaceTodo, h.todos.Replace)
}

// Delete обрабатывает DELETE /todos/{id}/.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx, log, ownerID, ok := h.begin(ctx, "Handler.Delete", LogHandlerDeleteTodo)
	if !ok {
		return unauthorized(ctx)
	}

	if err := h.todos.Delete(requestCtx, ownerID, ctx.Params(ParamID)); err != nil {
		log.Debug(requestCtx, ErrMsgServeFailed, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.NoContent(ctx)
}

type changeFunc func(ctx context.Context, ownerID, id string, input entities.TodoInput) (*entities.Todo, error)

func (h *Handler) change(ctx fiber.Ctx, handler, msg string, apply changeFunc) error {
	requestCtx, log, ownerID, ok := h.begin(ctx, handler, msg)
	if !ok {
		return unauthorized(ctx)
	}

	var req dto.TodoRequest
	if err := response.DecodeBody(ctx, &req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, err)
	}

	todo, err := apply(requestCtx, ownerID, ctx.Params(ParamID), req.ToInput())
	if err != nil {
		log.Debug(requestCtx, ErrMsgServeFailed, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewTodoResponse(todo))
}

// begin извлекает контекст запроса, логгер и владельца из идентичности.
func (h *Handler) begin(ctx fiber.Ctx, handler, msg string) (context.Context, *logger.Logger, string, bool) {
	requestCtx := middleware.RequestContext(ctx)
	identity, ok := middleware.Identity(ctx)

	log := logger.Log(requestCtx).With(
		zap.String("handler", handler),
		zap.String("todo_id", ctx.Params(ParamID)),
	)
	log.Debug(requestCtx, msg)

	return requestCtx, log, identity.UserID, ok && identity.UserID != ""
}

func unauthorized(ctx fiber.Ctx) error {
	return response.Message(ctx, fiber.StatusUnauthorized, response.MsgUnauthenticated)
}
