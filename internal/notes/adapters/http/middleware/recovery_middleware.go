package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"yanote/pkg/logger"
)

// ErrPanic оборачивает восстановленную панику обработчика.
var ErrPanic = errors.New("handler panic")

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
// Паника превращается в ошибку, которую отрисовывает обработчик ошибок приложения.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		requestCtx := c.Context()

		defer func() {
			if r := recover(); r != nil {
				logger.Log(requestCtx).Error(requestCtx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		return c.Next()
	}
}
