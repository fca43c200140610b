package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"posterhub/pkg/logger"
)

// RequestContextKey - ключ Locals с контекстом запроса.
const RequestContextKey = "requestContext"

// HeaderRequestID - заголовок с клиентским идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware кладет в Locals контекст запроса с request_id:
// из заголовка клиента либо сгенерированным.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.Locals(RequestContextKey, requestCtx)
		return ctx.Next()
	}
}

// RequestContext извлекает контекст запроса из Locals.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(RequestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context() // Запасной вариант
}
