// Package views отрисовывает HTML страницы сервиса.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/template/html/v2"
	"github.com/microcosm-cc/bluemonday"

	"yanote/internal/notes/adapters/http/middleware"
	"yanote/internal/notes/adapters/http/routes"
)

//go:embed templates
var templatesFS embed.FS

// Layout - общий макет страниц.
const Layout = "layouts/main"

// Шаблоны страниц.
const (
	PageHome       = "notes/home"
	PageList       = "notes/list"
	PageDetail     = "notes/detail"
	PageForm       = "notes/form"
	PageDelete     = "notes/delete"
	PageSuccess    = "notes/success"
	PageLogin      = "users/login"
	PageSignup     = "users/signup"
	PageLoggedOut  = "users/logged_out"
	PageNotFound   = "errors/404"
	PageServerFail = "errors/500"
)

var ugcPolicy = bluemonday.UGCPolicy()

// NewEngine создает движок шаблонов с функциями url и linebreaks.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("url", routes.URL)
	engine.AddFunc("linebreaks", Linebreaks)
	return engine, nil
}

// Linebreaks очищает пользовательский текст и заменяет переводы строк на <br>.
func Linebreaks(text string) template.HTML {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	clean := ugcPolicy.Sanitize(text)
	// #nosec G203 -- текст очищен bluemonday
	return template.HTML(strings.ReplaceAll(clean, "\n", "<br>"))
}

// WantsJSON сообщает, что клиент предпочитает JSON вместо HTML.
func WantsJSON(c fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// Render отрисовывает страницу name в общем макете со статусом status.
func Render(c fiber.Ctx, status int, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["User"] = middleware.PrincipalFrom(c)

	if err := c.Status(status).Render(name, bind, Layout); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

// NotFound отвечает 404 страницей или JSON.
func NotFound(c fiber.Ctx) error {
	if WantsJSON(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return Render(c, fiber.StatusNotFound, PageNotFound, fiber.Map{"Title": "Страница не найдена"})
}
