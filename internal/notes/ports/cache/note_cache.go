// Package cache описывает кэш заметок.
package cache

import (
	"context"

	"yanote/internal/notes/domain/entities"
)

// NoteCache кэширует заметки по slug.
// Get возвращает (nil, nil) при промахе.
type NoteCache interface {
	Get(ctx context.Context, slug string) (*entities.Note, error)
	Set(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, slug string) error
}
