package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/account/ports/api"
	"gotodo/internal/gateway/adapters/http/response"
	"gotodo/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorTokenRejected      = "token rejected"
)

// Допустимые схемы заголовка Authorization.
var authSchemes = []string{"Bearer", "Token"}

// NewAuthMiddleware проверяет токен и кладет идентичность вызывающего
// в Locals и в контекст запроса. Без действительного токена отвечает 401.
func NewAuthMiddleware(authenticator api.Authenticator) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return response.Message(ctx, fiber.StatusUnauthorized, response.MsgUnauthenticated)
		}

		token, ok := parseAuthorization(authHeader)
		if !ok {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return response.Message(ctx, fiber.StatusUnauthorized, response.MsgUnauthenticated)
		}

		identity, err := authenticator.Authenticate(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorTokenRejected, zap.Error(err))
			return response.Error(ctx, err)
		}

		ctx.Locals(LocalIdentity, *identity)
		SetRequestContext(ctx, withIdentity(requestCtx, *identity))

		return ctx.Next()
	}
}

// parseAuthorization извлекает токен из "<схема> <токен>".
func parseAuthorization(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	for _, allowed := range authSchemes {
		if strings.EqualFold(scheme, allowed) {
			return token, true
		}
	}
	return "", false
}
