// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel/trace"

	accountAPI "gotodo/internal/account/ports/api"
	"gotodo/internal/gateway/adapters/http/account"
	"gotodo/internal/gateway/adapters/http/health"
	"gotodo/internal/gateway/adapters/http/middleware"
	"gotodo/internal/gateway/adapters/http/response"
	"gotodo/internal/gateway/adapters/http/todos"
	todoAPI "gotodo/internal/todos/ports/api"
	"gotodo/pkg/telemetry"
)

// Dependencies содержит все, что нужно для сборки маршрутов.
type Dependencies struct {
	Accounts       accountAPI.AccountUseCase
	Authenticator  accountAPI.Authenticator
	Todos          todoAPI.TodoUseCase
	HealthChecks   []health.Check
	TracerProvider trace.TracerProvider
	Metrics        *telemetry.Metrics
}

// NewApp создает fiber-приложение с обработчиком ошибок сервиса.
// Маршруты сопоставляются с завершающим слэшем и без него.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.StrictRouting = false
	cfg.ErrorHandler = func(ctx fiber.Ctx, err error) error {
		return response.Error(ctx, err)
	}
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	accountHandler := account.NewHandler(deps.Accounts)
	todosHandler := todos.NewHandler(deps.Todos)
	healthHandler := health.NewHandler(deps.HealthChecks...)
	authMiddleware := middleware.NewAuthMiddleware(deps.Authenticator)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewTelemetryMiddleware(deps.TracerProvider, deps.Metrics))
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", healthHandler.Health)

	// Публичные маршруты учетных записей.
	app.Post("/create_user", accountHandler.Register)
	app.Post("/create_user_token", accountHandler.IssueToken)

	// Защищенные маршруты.
	app.Group("/revoke_user_token", authMiddleware).
		Post("", accountHandler.RevokeToken)

	userRoutes := app.Group("/manage_user", authMiddleware)
	userRoutes.Get("", accountHandler.GetProfile)
	userRoutes.Patch("", accountHandler.UpdateProfile)
	userRoutes.Put("", accountHandler.ReplaceProfile)

	todoRoutes := app.Group("/todos", authMiddleware)
	todoRoutes.Get("", todosHandler.List)
	todoRoutes.Post("", todosHandler.Create)
	todoRoutes.Get("/:"+todos.ParamID, todosHandler.Get)
	todoRoutes.Patch("/:"+todos.ParamID, todosHandler.Update)
	todoRoutes.Put("/:"+todos.ParamID, todosHandler.Replace)
	todoRoutes.Delete("/:"+todos.ParamID, todosHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return response.Message(ctx, fiber.StatusNotFound, response.MsgRouteNotFound)
	})
}
