// Package users содержит HTTP обработчики входа, регистрации и выхода.
package users

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	authentities "yanote/internal/auth/domain/entities"
	"yanote/internal/auth/domain/services"
	"yanote/internal/auth/ports/api"
	"yanote/internal/notes/adapters/http/middleware"
	"yanote/internal/notes/adapters/http/routes"
	"yanote/internal/notes/adapters/http/views"
	"yanote/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerSignup = "users handler: signup"
	LogHandlerLogin  = "users handler: login"
	LogHandlerLogout = "users handler: logout"

	ErrorFailedToServeRequest = "failed to serve request"
)

// Сообщения форм.
const (
	MsgInvalidCredentials = "Пожалуйста, введите правильные имя пользователя и пароль."
	MsgUsernameTaken      = "Пользователь с таким именем уже существует."
	MsgUsernameRequired   = "Укажите имя пользователя."
	MsgUsernameInvalid    = "Имя пользователя может содержать только буквы, цифры и символы @/./+/-/_, не более 150 символов."
	MsgPasswordTooShort   = "Пароль слишком короткий. Он должен содержать как минимум 8 символов."
	MsgPasswordTooWeak    = "Пароль должен содержать хотя бы одну букву и одну цифру."
	MsgPasswordsMismatch  = "Введенные пароли не совпадают."
)

// CookieConfig описывает cookie с токеном.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler содержит HTTP обработчики раздела пользователей.
type Handler struct {
	auth   api.AuthUseCase
	cookie CookieConfig
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(auth api.AuthUseCase, cookie CookieConfig) *Handler {
	return &Handler{auth: auth, cookie: cookie}
}

// LoginForm отображает форму входа.
func (h *Handler) LoginForm(c fiber.Ctx) error {
	return renderLogin(c, fiber.StatusOK, "", c.Query(routes.NextParam), "")
}

// Login проверяет учетные данные и выдает токен в cookie.
func (h *Handler) Login(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	username := c.FormValue("username")
	next := c.FormValue(routes.NextParam, c.Query(routes.NextParam))

	session, err := h.auth.Login(requestCtx, username, c.FormValue("password"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return renderLogin(c, fiber.StatusOK, username, next, MsgInvalidCredentials)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return fmt.Errorf("logging in: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    session.AccessToken,
		Path:     "/",
		Expires:  session.ExpiresAt,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	if views.WantsJSON(c) {
		return c.JSON(fiber.Map{
			"access_token": session.AccessToken,
			"expires_at":   session.ExpiresAt.Format(time.RFC3339),
		})
	}

	target := routes.URL(routes.List)
	if routes.SafeNext(next) {
		target = next
	}
	return c.Redirect().Status(fiber.StatusFound).To(target)
}

// Logout отзывает токен и удаляет cookie.
func (h *Handler) Logout(c fiber.Ctx) error {
	requestCtx := c.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogout)

	if err := h.auth.Logout(requestCtx, middleware.TokenFrom(c)); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	c.ClearCookie(h.cookie.Name)
	c.Locals(middleware.LocalsPrincipal, nil)

	return views.Render(c, fiber.StatusOK, views.PageLoggedOut, fiber.Map{"Title": "Выход"})
}

// SignupForm отображает форму регистрации.
func (h *Handler) SignupForm(c fiber.Ctx) error {
	return renderSignup(c, fiber.StatusOK, "", "")
}

// Signup регистрирует пользователя и перенаправляет на вход.
func (h *Handler) Signup(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerSignup)

	username := c.FormValue("username")
	_, err := h.auth.Signup(requestCtx, username, c.FormValue("password"), c.FormValue("password_confirm"))
	if err != nil {
		if msg, ok := signupMessage(err); ok {
			return renderSignup(c, fiber.StatusOK, username, msg)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return fmt.Errorf("signing up: %w", err)
	}

	return c.Redirect().Status(fiber.StatusFound).To(routes.URL(routes.Login))
}

func signupMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		return MsgUsernameTaken, true
	case errors.Is(err, authentities.ErrEmptyUsername):
		return MsgUsernameRequired, true
	case errors.Is(err, authentities.ErrUsernameTooLong), errors.Is(err, authentities.ErrUsernameInvalid):
		return MsgUsernameInvalid, true
	case errors.Is(err, authentities.ErrPasswordTooShort):
		return MsgPasswordTooShort, true
	case errors.Is(err, authentities.ErrPasswordTooWeak):
		return MsgPasswordTooWeak, true
	case errors.Is(err, authentities.ErrPasswordsMismatch):
		return MsgPasswordsMismatch, true
	default:
		return "", false
	}
}

func renderLogin(c fiber.Ctx, status int, username, next, msg string) error {
	if views.WantsJSON(c) && msg != "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
	}
	return views.Render(c, status, views.PageLogin, fiber.Map{
		"Title":    "Вход",
		"Username": username,
		"Next":     next,
		"Error":    msg,
	})
}

func renderSignup(c fiber.Ctx, status int, username, msg string) error {
	if views.WantsJSON(c) && msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}
	return views.Render(c, status, views.PageSignup, fiber.Map{
		"Title":    "Регистрация",
		"Username": username,
		"Error":    msg,
	})
}
