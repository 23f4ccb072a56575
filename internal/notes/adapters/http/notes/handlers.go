// Package notes содержит HTTP обработчики заметок.
package notes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"yanote/internal/notes/adapters/http/middleware"
	"yanote/internal/notes/adapters/http/routes"
	"yanote/internal/notes/adapters/http/views"
	"yanote/internal/notes/domain/entities"
	"yanote/internal/notes/ports/api"
	"yanote/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerAdd    = "notes handler: add"
	LogHandlerEdit   = "notes handler: edit"
	LogHandlerDelete = "notes handler: delete"

	ErrorInvalidForm = "invalid form"
)

const slugParam = "slug"

// Handler содержит HTTP обработчики заметок.
type Handler struct {
	notes api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes api.NoteUseCase) *Handler {
	return &Handler{notes: notes}
}

// Home отображает главную страницу.
func (h *Handler) Home(c fiber.Ctx) error {
	count, err := h.notes.Count(c.Context())
	if err != nil {
		return fmt.Errorf("counting notes: %w", err)
	}

	if views.WantsJSON(c) {
		return c.JSON(fiber.Map{"count": count})
	}
	return views.Render(c, fiber.StatusOK, views.PageHome, fiber.Map{"Title": "Главная", "Count": count})
}

// List отображает заметки пользователя.
func (h *Handler) List(c fiber.Ctx) error {
	notes, err := h.notes.List(c.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return h.fail(c, err)
	}

	if views.WantsJSON(c) {
		return c.JSON(fiber.Map{"object_list": notes})
	}
	return views.Render(c, fiber.StatusOK, views.PageList, fiber.Map{"Title": "Заметки", "object_list": notes})
}

// Detail отображает заметку.
func (h *Handler) Detail(c fiber.Ctx) error {
	note, err := h.notes.Detail(c.Context(), middleware.PrincipalFrom(c), c.Params(slugParam))
	if err != nil {
		return h.fail(c, err)
	}

	if views.WantsJSON(c) {
		return c.JSON(fiber.Map{"note": note})
	}
	return views.Render(c, fiber.StatusOK, views.PageDetail, fiber.Map{"Title": note.Title, "note": note})
}

// AddForm отображает пустую форму новой заметки.
func (h *Handler) AddForm(c fiber.Ctx) error {
	return renderForm(c, fiber.StatusOK, entities.NoteForm{}, nil, false)
}

// Add создает заметку из формы.
func (h *Handler) Add(c fiber.Ctx) error {
	requestCtx := c.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerAdd)

	form, err := bindForm(c)
	if err != nil {
		return err
	}

	if _, err := h.notes.Add(requestCtx, middleware.PrincipalFrom(c), form); err != nil {
		return h.failForm(c, err, form, false)
	}
	return redirectSuccess(c)
}

// EditForm отображает форму редактирования.
func (h *Handler) EditForm(c fiber.Ctx) error {
	note, err := h.notes.Detail(c.Context(), middleware.PrincipalFrom(c), c.Params(slugParam))
	if err != nil {
		return h.fail(c, err)
	}

	form := entities.NoteForm{Title: note.Title, Text: note.Text, Slug: note.Slug}
	return renderForm(c, fiber.StatusOK, form, nil, true)
}

// Edit сохраняет изменения заметки.
func (h *Handler) Edit(c fiber.Ctx) error {
	requestCtx := c.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerEdit, zap.String("slug", c.Params(slugParam)))

	form, err := bindForm(c)
	if err != nil {
		return err
	}

	if _, err := h.notes.Edit(requestCtx, middleware.PrincipalFrom(c), c.Params(slugParam), form); err != nil {
		if form.Slug == "" {
			form.Slug = c.Params(slugParam)
		}
		return h.failForm(c, err, form, true)
	}
	return redirectSuccess(c)
}

// DeleteConfirm отображает подтверждение удаления.
func (h *Handler) DeleteConfirm(c fiber.Ctx) error {
	note, err := h.notes.Detail(c.Context(), middleware.PrincipalFrom(c), c.Params(slugParam))
	if err != nil {
		return h.fail(c, err)
	}
	return views.Render(c, fiber.StatusOK, views.PageDelete, fiber.Map{"Title": "Удаление заметки", "note": note})
}

// Delete удаляет заметку.
func (h *Handler) Delete(c fiber.Ctx) error {
	requestCtx := c.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDelete, zap.String("slug", c.Params(slugParam)))

	if err := h.notes.Delete(requestCtx, middleware.PrincipalFrom(c), c.Params(slugParam)); err != nil {
		return h.fail(c, err)
	}
	return redirectSuccess(c)
}

// Success отображает страницу успешной операции.
func (h *Handler) Success(c fiber.Ctx) error {
	return views.Render(c, fiber.StatusOK, views.PageSuccess, fiber.Map{"Title": "Успешно"})
}

func (h *Handler) fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrAuthenticationRequired):
		return middleware.RedirectToLogin(c)
	case errors.Is(err, entities.ErrNoteNotFound):
		return views.NotFound(c)
	default:
		return err
	}
}

func (h *Handler) failForm(c fiber.Ctx, err error, form entities.NoteForm, editing bool) error {
	var verr *entities.ValidationError
	if errors.As(err, &verr) {
		requestCtx := c.Context()
		logger.Log(requestCtx).Debug(requestCtx, ErrorInvalidForm, zap.Error(err))
		return renderForm(c, fiber.StatusOK, form, verr, editing)
	}
	return h.fail(c, err)
}

func bindForm(c fiber.Ctx) (entities.NoteForm, error) {
	var form entities.NoteForm
	if err := c.Bind().Body(&form); err != nil {
		return form, fiber.NewError(fiber.StatusBadRequest, ErrorInvalidForm)
	}
	return form, nil
}

func renderForm(c fiber.Ctx, status int, form entities.NoteForm, verr *entities.ValidationError, editing bool) error {
	if views.WantsJSON(c) {
		body := fiber.Map{"form": form}
		if verr != nil {
			body["errors"] = verr.Fields
		}
		return c.Status(status).JSON(body)
	}

	title, action := "Новая заметка", routes.URL(routes.Add)
	if editing {
		title, action = "Редактирование заметки", c.OriginalURL()
	}
	return views.Render(c, status, views.PageForm, fiber.Map{
		"Title":   title,
		"Action":  action,
		"Editing": editing,
		"form":    form,
		"errors":  verr,
	})
}

func redirectSuccess(c fiber.Ctx) error {
	return c.Redirect().Status(fiber.StatusFound).To(routes.URL(routes.Success))
}
