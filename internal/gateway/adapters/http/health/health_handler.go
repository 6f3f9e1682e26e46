// Package health содержит обработчик проверки готовности зависимостей.
package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gotodo/internal/gateway/adapters/http/middleware"
	"gotodo/internal/gateway/adapters/http/response"
	"gotodo/pkg/logger"
)

// Статусы проверки.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	LogCheckFailed = "health check failed"

	defaultTimeout = 2 * time.Second
)

// Pinger - зависимость, доступность которой проверяется.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check связывает имя зависимости с ее проверкой.
type Check struct {
	Name   string
	Pinger Pinger
}

// Report - тело ответа /healthz.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Handler проверяет зависимости параллельно.
type Handler struct {
	checks  []Check
	timeout time.Duration
}

// NewHandler создает обработчик с набором проверок.
func NewHandler(checks ...Check) *Handler {
	return &Handler{checks: checks, timeout: defaultTimeout}
}

// Health обрабатывает GET /healthz: 200, если все зависимости отвечают, иначе 503.
func (h *Handler) Health(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Health"))

	checkCtx, cancel := context.WithTimeout(requestCtx, h.timeout)
	defer cancel()

	results := make([]string, len(h.checks))
	var group errgroup.Group
	for i, check := range h.checks {
		group.Go(func() error {
			if err := check.Pinger.Ping(checkCtx); err != nil {
				log.Warn(requestCtx, LogCheckFailed, zap.String("check", check.Name), zap.Error(err))
				results[i] = StatusUnavailable
				return err
			}
			results[i] = StatusOK
			return nil
		})
	}
	failed := group.Wait() != nil

	report := Report{Status: StatusOK, Checks: make(map[string]string, len(h.checks))}
	for i, check := range h.checks {
		report.Checks[check.Name] = results[i]
	}

	status := fiber.StatusOK
	if failed {
		report.Status = StatusUnavailable
		status = fiber.StatusServiceUnavailable
	}
	return response.JSON(ctx, status, report)
}
