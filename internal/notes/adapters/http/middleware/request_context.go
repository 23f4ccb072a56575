// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"yanote/pkg/logger"
)

// NewRequestIDMiddleware выдает запросу идентификатор, если клиент его не прислал.
func NewRequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: logger.GenerateRequestID,
	})
}

// NewRequestContextMiddleware переносит идентификатор запроса и логгер в контекст запроса.
// Должно стоять после NewRequestIDMiddleware.
func NewRequestContextMiddleware(base *logger.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := c.Context()
		if id := requestid.FromContext(c); id != "" {
			ctx = logger.NewRequestIDContext(ctx, id)
		}
		if base != nil {
			ctx = logger.NewContext(ctx, base)
		}
		c.SetContext(ctx)
		return c.Next()
	}
}
