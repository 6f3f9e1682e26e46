// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"gotodo/internal/account/domain/entities"
)

// Ключи fiber.Locals.
const (
	LocalRequestContext = "requestContext"
	LocalIdentity       = "identity"
)

type identityKeyType struct{}

var identityKey = identityKeyType{}

// RequestContext возвращает контекст запроса, накопленный промежуточным ПО.
func RequestContext(ctx fiber.Ctx) context.Context {
	if reqCtx, ok := ctx.Locals(LocalRequestContext).(context.Context); ok {
		return reqCtx
	}
	return ctx.Context()
}

// SetRequestContext сохраняет контекст для следующих обработчиков.
func SetRequestContext(ctx fiber.Ctx, reqCtx context.Context) {
	ctx.Locals(LocalRequestContext, reqCtx)
}

// Identity возвращает идентичность, установленную NewAuthMiddleware.
func Identity(ctx fiber.Ctx) (entities.Identity, bool) {
	identity, ok := ctx.Locals(LocalIdentity).(entities.Identity)
	return identity, ok
}

// IdentityFromContext извлекает идентичность из context.Context.
func IdentityFromContext(ctx context.Context) (entities.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(entities.Identity)
	return identity, ok
}

func withIdentity(ctx context.Context, identity entities.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
