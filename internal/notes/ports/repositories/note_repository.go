// Package repositories описывает хранилища сервиса заметок.
package repositories

import (
	"context"

	"yanote/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс хранилища заметок.
type NoteRepository interface {
	// Create сохраняет заметку и возвращает ее с присвоенными ID и временными метками.
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Note, error)
	// FindByAuthor возвращает заметки автора в порядке возрастания ID.
	FindByAuthor(ctx context.Context, authorID string) ([]*entities.Note, error)
	// Update сохраняет заголовок и текст заметки.
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	Count(ctx context.Context) (int, error)
}
