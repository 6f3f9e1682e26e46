// Package account содержит HTTP обработчики учетных записей.
package account

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/account/ports/api"
	"gotodo/internal/gateway/adapters/http/middleware"
	"gotodo/internal/gateway/adapters/http/response"
	"gotodo/internal/gateway/app/dto"
	"gotodo/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister      = "account handler: register"
	LogHandlerIssueToken    = "account handler: issue token"  // #nosec G101 - not a credential
	LogHandlerRevokeToken   = "account handler: revoke token" // #nosec G101 - not a credential
	LogHandlerGetProfile    = "account handler: get profile"
	LogHandlerUpdateProfile = "account handler: update profile"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Handler содержит HTTP обработчики учетных записей.
type Handler struct {
	accounts api.AccountUseCase
}

// NewHandler создает новый экземпляр обработчика учетных записей.
func NewHandler(accounts api.AccountUseCase) *Handler {
	return &Handler{accounts: accounts}
}

// Register обрабатывает POST /create_user/.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Register"))
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := response.DecodeBody(ctx, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, err)
	}

	user, err := h.accounts.Register(requestCtx, req.Username, req.Email, req.Password)
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, dto.NewUserResponse(user))
}

// IssueToken обрабатывает POST /create_user_token/.
func (h *Handler) IssueToken(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.IssueToken"))
	log.Debug(requestCtx, LogHandlerIssueToken)

	var req dto.TokenRequest
	if err := response.DecodeBody(ctx, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, err)
	}

	issued, err := h.accounts.IssueToken(requestCtx, req.Username, req.Password)
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.TokenResponse{Token: issued.Token})
}

// RevokeToken обрабатывает POST /revoke_user_token/: отзывает токен запроса.
func (h *Handler) RevokeToken(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.RevokeToken"))
	log.Debug(requestCtx, LogHandlerRevokeToken)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, response.MsgUnauthenticated)
	}

	if err := h.accounts.RevokeToken(requestCtx, identity); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.NoContent(ctx)
}

// GetProfile обрабатывает GET /manage_user/.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetProfile"))
	log.Debug(requestCtx, LogHandlerGetProfile)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, response.MsgUnauthenticated)
	}

	user, err := h.accounts.GetOwnProfile(requestCtx, identity)
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewUserResponse(user))
}

// UpdateProfile обрабатывает PATCH /manage_user/.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	return h.updateProfile(ctx, false)
}

// ReplaceProfile обрабатывает PUT /manage_user/.
func (h *Handler) ReplaceProfile(ctx fiber.Ctx) error {
	return h.updateProfile(ctx, true)
}

func (h *Handler) updateProfile(ctx fiber.Ctx, replace bool) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(
		zap.String("handler", "Handler.UpdateProfile"),
		zap.Bool("replace", replace),
	)
	log.Debug(requestCtx, LogHandlerUpdateProfile)

	identity, ok := middleware.Identity(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, response.MsgUnauthenticated)
	}

	var req dto.ProfileRequest
	if err := response.DecodeBody(ctx, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, err)
	}

	user, err := h.accounts.UpdateOwnProfile(requestCtx, identity, req.ToUpdate(replace))
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewUserResponse(user))
}
