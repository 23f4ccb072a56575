// Package http содержит HTTP сервер сервиса заметок.
package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	authapi "yanote/internal/auth/ports/api"
	"yanote/internal/notes/adapters/http/middleware"
	"yanote/internal/notes/adapters/http/notes"
	"yanote/internal/notes/adapters/http/routes"
	"yanote/internal/notes/adapters/http/users"
	"yanote/internal/notes/adapters/http/views"
	notesapi "yanote/internal/notes/ports/api"
	"yanote/pkg/logger"
)

// Options содержит настройки HTTP приложения.
type Options struct {
	AppName        string
	CookieName     string
	CookieSecure   bool
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MetricsEnabled bool
	MetricsPath    string
	// Logger попадает в контекст каждого запроса. nil означает глобальный логгер.
	Logger *logger.Logger
}

// NewApp создает fiber приложение с шаблонами и маршрутами сервиса.
func NewApp(opts Options, notesUC notesapi.NoteUseCase, authUC authapi.AuthUseCase) (*fiber.App, error) {
	engine, err := views.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		Views:        engine,
		ViewsLayout:  views.Layout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	SetupRouter(app, opts, notesUC, authUC)
	return app, nil
}

// endpoint связывает методы HTTP с обработчиком маршрута.
type endpoint struct {
	methods []string
	handler fiber.Handler
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, opts Options, notesUC notesapi.NoteUseCase, authUC authapi.AuthUseCase) {
	notesHandler := notes.NewHandler(notesUC)
	usersHandler := users.NewHandler(authUC, users.CookieConfig{Name: opts.CookieName, Secure: opts.CookieSecure})

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewRequestContextMiddleware(opts.Logger))
	app.Use(middleware.NewMetricsMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewAuthMiddleware(authUC, opts.CookieName))
	app.Use(middleware.NewLoggerMiddleware())

	if opts.MetricsEnabled {
		app.Get(opts.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	get := []string{fiber.MethodGet}
	post := []string{fiber.MethodPost}

	endpoints := map[string][]endpoint{
		routes.Home:    {{get, notesHandler.Home}},
		routes.Login:   {{get, usersHandler.LoginForm}, {post, usersHandler.Login}},
		routes.Logout:  {{[]string{fiber.MethodGet, fiber.MethodPost}, usersHandler.Logout}},
		routes.Signup:  {{get, usersHandler.SignupForm}, {post, usersHandler.Signup}},
		routes.List:    {{get, notesHandler.List}},
		routes.Add:     {{get, notesHandler.AddForm}, {post, notesHandler.Add}},
		routes.Success: {{get, notesHandler.Success}},
		routes.Detail:  {{get, notesHandler.Detail}},
		routes.Edit:    {{get, notesHandler.EditForm}, {post, notesHandler.Edit}},
		routes.Delete:  {{get, notesHandler.DeleteConfirm}, {[]string{fiber.MethodPost, fiber.MethodDelete}, notesHandler.Delete}},
	}

	loginRequired := middleware.NewLoginRequiredMiddleware()

	for _, route := range routes.All() {
		var guards []fiber.Handler
		if route.Protected {
			guards = append(guards, loginRequired)
		}
		for i, e := range endpoints[route.Name] {
			registered := app.Add(e.methods, route.Path, e.handler, guards...)
			if i == 0 {
				registered.Name(route.Name)
			}
		}
	}

	// Обработчик для несуществующих маршрутов.
	app.Use(views.NotFound)
}

// errorHandler отрисовывает ошибки, которые вернули обработчики.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	requestCtx := c.Context()
	if code >= fiber.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, "request failed", zap.Error(err))
	}

	if code == fiber.StatusNotFound {
		return views.NotFound(c)
	}

	msg := fiber.ErrInternalServerError.Message
	if fe != nil {
		msg = fe.Message
	}

	if views.WantsJSON(c) {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	if code >= fiber.StatusInternalServerError {
		if renderErr := views.Render(c, code, views.PageServerFail, fiber.Map{"Title": "Ошибка"}); renderErr == nil {
			return nil
		}
	}
	return c.Status(code).SendString(msg)
}
