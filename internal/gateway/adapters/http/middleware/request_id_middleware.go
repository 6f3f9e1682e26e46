package middleware

import (
	"github.com/gofiber/fiber/v3"

	"gotodo/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLength ограничивает длину идентификатора, пришедшего от клиента.
const maxRequestIDLength = 128

// NewRequestIDMiddleware берет X-Request-ID из запроса или генерирует новый,
// кладет его в контекст логгера и возвращает в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = logger.GenerateRequestID()
		}

		ctx.Set(HeaderRequestID, requestID)
		SetRequestContext(ctx, logger.NewRequestIDContext(RequestContext(ctx), requestID))

		return ctx.Next()
	}
}
