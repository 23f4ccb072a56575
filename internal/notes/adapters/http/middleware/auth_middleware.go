package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"yanote/internal/auth/ports/api"
	"yanote/internal/notes/adapters/http/routes"
	"yanote/internal/notes/domain/entities"
	"yanote/pkg/logger"
)

// Ключи Locals.
const (
	LocalsPrincipal = "principal"
	LocalsToken     = "token"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware определяет пользователя по cookie cookieName или заголовку Authorization.
// Невалидный или отозванный токен означает анонимного пользователя.
func NewAuthMiddleware(auth api.AuthUseCase, cookieName string) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c, cookieName)
		if token == "" {
			return c.Next()
		}

		requestCtx := c.Context()
		claims, err := auth.Authenticate(requestCtx, token)
		if err != nil {
			logger.Log(requestCtx).Debug(requestCtx, "token rejected", zap.Error(err))
			return c.Next()
		}

		c.Locals(LocalsToken, token)
		c.Locals(LocalsPrincipal, &entities.Principal{UserID: claims.UserID, Username: claims.Username})
		return c.Next()
	}
}

// NewLoginRequiredMiddleware перенаправляет анонимных пользователей на страницу входа.
func NewLoginRequiredMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if PrincipalFrom(c).IsAuthenticated() {
			return c.Next()
		}
		return RedirectToLogin(c)
	}
}

// RedirectToLogin отправляет на страницу входа с возвратом на текущий адрес.
func RedirectToLogin(c fiber.Ctx) error {
	return c.Redirect().Status(fiber.StatusFound).To(routes.LoginRedirect(c.OriginalURL()))
}

// PrincipalFrom возвращает пользователя запроса или nil для анонима.
func PrincipalFrom(c fiber.Ctx) *entities.Principal {
	p, _ := c.Locals(LocalsPrincipal).(*entities.Principal)
	return p
}

// TokenFrom возвращает принятый токен запроса.
func TokenFrom(c fiber.Ctx) string {
	token, _ := c.Locals(LocalsToken).(string)
	return token
}

func extractToken(c fiber.Ctx, cookieName string) string {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	return c.Cookies(cookieName)
}
