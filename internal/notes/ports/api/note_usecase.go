// Package api описывает операции сервиса заметок для транспортного слоя.
package api

import (
	"context"

	"yanote/internal/notes/domain/entities"
)

// NoteUseCase - операции над заметками. Principal передается явно,
// nil означает анонимного пользователя.
type NoteUseCase interface {
	List(ctx context.Context, principal *entities.Principal) ([]*entities.Note, error)
	Detail(ctx context.Context, principal *entities.Principal, slug string) (*entities.Note, error)
	Add(ctx context.Context, principal *entities.Principal, form entities.NoteForm) (*entities.Note, error)
	Edit(ctx context.Context, principal *entities.Principal, slug string, form entities.NoteForm) (*entities.Note, error)
	Delete(ctx context.Context, principal *entities.Principal, slug string) error
	Count(ctx context.Context) (int, error)
}
