// Package app реализует бизнес-логику сервиса заметок.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"yanote/internal/notes/domain/access"
	"yanote/internal/notes/domain/entities"
	"yanote/internal/notes/domain/slugs"
	"yanote/internal/notes/ports/api"
	"yanote/internal/notes/ports/cache"
	"yanote/internal/notes/ports/repositories"
	"yanote/pkg/logger"
)

const (
	// maxSlugAttempts ограничивает подбор суффикса для slug.
	maxSlugAttempts = 1000
	// maxCreateAttempts ограничивает повторы вставки, если построенный slug заняли параллельно.
	maxCreateAttempts = 3
)

// ErrSlugExhausted возвращается, если не удалось подобрать свободный slug.
var ErrSlugExhausted = errors.New("no free slug available")

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo  repositories.NoteRepository
	noteCache cache.NoteCache
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, noteCache cache.NoteCache) api.NoteUseCase {
	return &NoteUseCase{
		noteRepo:  noteRepo,
		noteCache: noteCache,
	}
}

// List возвращает заметки пользователя в порядке создания.
func (uc *NoteUseCase) List(ctx context.Context, principal *entities.Principal) ([]*entities.Note, error) {
	if access.Decide(principal, access.ActionList, nil) != access.Allow {
		return nil, entities.ErrAuthenticationRequired
	}

	notes, err := uc.noteRepo.FindByAuthor(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return access.FilterOwned(principal, notes), nil
}

// Detail возвращает заметку владельцу. Чужая и отсутствующая заметки неразличимы.
func (uc *NoteUseCase) Detail(ctx context.Context, principal *entities.Principal, slug string) (*entities.Note, error) {
	if !principal.IsAuthenticated() {
		return nil, entities.ErrAuthenticationRequired
	}

	note, err := uc.cachedNote(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal, access.ActionDetail, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Add создает заметку. Пустой slug строится из заголовка.
func (uc *NoteUseCase) Add(ctx context.Context, principal *entities.Principal, form entities.NoteForm) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Add"))

	if access.Decide(principal, access.ActionAdd, nil) != access.Allow {
		return nil, entities.ErrAuthenticationRequired
	}

	form = form.Normalize()
	verr := form.Validate()
	if verr == nil {
		verr = &entities.ValidationError{}
	}

	if form.Slug != "" {
		if err := uc.checkSlug(ctx, form.Slug, verr); err != nil {
			return nil, err
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	derived := form.Slug == ""
	for attempt := 1; ; attempt++ {
		slug := form.Slug
		if derived {
			var err error
			slug, err = uc.freeSlug(ctx, slugs.FromTitle(form.Title))
			if err != nil {
				return nil, err
			}
		}

		note, err := uc.noteRepo.Create(ctx, &entities.Note{
			Title:    form.Title,
			Text:     form.Text,
			Slug:     slug,
			AuthorID: principal.UserID,
		})
		switch {
		case err == nil:
			log.Info(ctx, "note created", zap.Int64("noteID", note.ID), zap.String("slug", note.Slug))
			return note, nil
		case !errors.Is(err, entities.ErrSlugTaken):
			return nil, fmt.Errorf("failed to create note: %w", err)
		case !derived:
			return nil, entities.NewFieldError("slug", slug+entities.MsgSlugTaken)
		case attempt == maxCreateAttempts:
			return nil, ErrSlugExhausted
		}
		log.Debug(ctx, "derived slug taken concurrently, retrying", zap.String("slug", slug))
	}
}

// Edit обновляет заголовок и текст заметки. Slug не меняется.
func (uc *NoteUseCase) Edit(ctx context.Context, principal *entities.Principal, slug string, form entities.NoteForm) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Edit"))

	note, err := uc.ownedNote(ctx, principal, access.ActionEdit, slug)
	if err != nil {
		return nil, err
	}

	form = form.Normalize()
	verr := form.Validate()
	if verr == nil {
		verr = &entities.ValidationError{}
	}
	if form.Slug != "" && form.Slug != note.Slug {
		verr.Add("slug", entities.MsgSlugImmutable)
	}
	if !verr.Empty() {
		return nil, verr
	}

	note.Title = form.Title
	note.Text = form.Text
	if err := uc.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	uc.invalidate(ctx, note.Slug)

	log.Info(ctx, "note updated", zap.Int64("noteID", note.ID))
	return note, nil
}

// Delete удаляет заметку владельца.
func (uc *NoteUseCase) Delete(ctx context.Context, principal *entities.Principal, slug string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Delete"))

	note, err := uc.ownedNote(ctx, principal, access.ActionDelete, slug)
	if err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	uc.invalidate(ctx, note.Slug)

	log.Info(ctx, "note deleted", zap.Int64("noteID", note.ID))
	return nil
}

// Count возвращает общее число заметок.
func (uc *NoteUseCase) Count(ctx context.Context) (int, error) {
	count, err := uc.noteRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

// ownedNote читает заметку из хранилища в обход кэша и проверяет доступ.
func (uc *NoteUseCase) ownedNote(ctx context.Context, principal *entities.Principal, action access.Action, slug string) (*entities.Note, error) {
	if !principal.IsAuthenticated() {
		return nil, entities.ErrAuthenticationRequired
	}

	note, err := uc.noteRepo.FindBySlug(ctx, slug)
	if err != nil && !errors.Is(err, entities.ErrNoteNotFound) {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if err := authorize(principal, action, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (uc *NoteUseCase) cachedNote(ctx context.Context, slug string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.cachedNote"))

	if note, err := uc.noteCache.Get(ctx, slug); err != nil {
		log.Debug(ctx, "cache unavailable, reading from store", zap.Error(err))
	} else if note != nil {
		return note, nil
	}

	note, err := uc.noteRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if err := uc.noteCache.Set(ctx, note); err != nil {
		log.Debug(ctx, "failed to cache note", zap.Error(err))
	}
	return note, nil
}

func (uc *NoteUseCase) invalidate(ctx context.Context, slug string) {
	if err := uc.noteCache.Delete(ctx, slug); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate cached note", zap.String("slug", slug), zap.Error(err))
	}
}

func (uc *NoteUseCase) checkSlug(ctx context.Context, slug string, verr *entities.ValidationError) error {
	if !slugs.Valid(slug) {
		verr.Add("slug", entities.MsgSlugInvalid)
		return nil
	}

	exists, err := uc.noteRepo.SlugExists(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		verr.Add("slug", slug+entities.MsgSlugTaken)
	}
	return nil
}

// freeSlug возвращает base или первый свободный вариант base-2, base-3 и далее.
func (uc *NoteUseCase) freeSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for n := 2; n <= maxSlugAttempts; n++ {
		exists, err := uc.noteRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = slugs.WithSuffix(base, n)
	}
	return "", ErrSlugExhausted
}

func authorize(principal *entities.Principal, action access.Action, note *entities.Note) error {
	switch access.Decide(principal, action, note) {
	case access.Allow:
		return nil
	case access.RedirectToLogin:
		return entities.ErrAuthenticationRequired
	default:
		return entities.ErrNoteNotFound
	}
}
