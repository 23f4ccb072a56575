package cache

import (
	"context"

	"yanote/internal/notes/domain/entities"
	"yanote/internal/notes/ports/cache"
)

// NoopCache используется, когда Redis отключен.
type NoopCache struct{}

// NewNoopCache создает кэш, который ничего не хранит.
func NewNoopCache() cache.NoteCache {
	return NoopCache{}
}

func (NoopCache) Get(context.Context, string) (*entities.Note, error) { return nil, nil }

func (NoopCache) Set(context.Context, *entities.Note) error { return nil }

func (NoopCache) Delete(context.Context, string) error { return nil }
