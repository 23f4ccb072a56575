// Package memory содержит хранилище заметок в памяти процесса.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"yanote/internal/notes/domain/entities"
	"yanote/internal/notes/ports/repositories"
)

// NoteRepository хранит заметки в map, ID выдаются по возрастанию.
type NoteRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*entities.Note
	bySlug map[string]int64
	now    func() time.Time
}

// NewNoteRepository создает пустой репозиторий.
func NewNoteRepository() repositories.NoteRepository {
	return &NoteRepository{
		byID:   make(map[int64]*entities.Note),
		bySlug: make(map[string]int64),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create сохраняет заметку.
func (r *NoteRepository) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySlug[note.Slug]; ok {
		return nil, entities.ErrSlugTaken
	}

	r.nextID++
	now := r.now()
	created := &entities.Note{
		ID:        r.nextID,
		Title:     note.Title,
		Text:      note.Text,
		Slug:      note.Slug,
		AuthorID:  note.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.byID[created.ID] = created
	r.bySlug[created.Slug] = created.ID

	clone := *created
	return &clone, nil
}

// FindBySlug находит заметку по slug.
func (r *NoteRepository) FindBySlug(_ context.Context, slug string) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlug[slug]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

// FindByAuthor возвращает заметки автора в порядке возрастания ID.
func (r *NoteRepository) FindByAuthor(_ context.Context, authorID string) ([]*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]*entities.Note, 0)
	for _, n := range r.byID {
		if n.AuthorID == authorID {
			clone := *n
			notes = append(notes, &clone)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

// Update сохраняет заголовок и текст.
func (r *NoteRepository) Update(_ context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[note.ID]
	if !ok {
		return entities.ErrNoteNotFound
	}
	stored.Title = note.Title
	stored.Text = note.Text
	stored.UpdatedAt = r.now()
	note.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return entities.ErrNoteNotFound
	}
	delete(r.bySlug, stored.Slug)
	delete(r.byID, id)
	return nil
}

// SlugExists проверяет, занят ли slug.
func (r *NoteRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.bySlug[slug]
	return ok, nil
}

// Count возвращает число заметок.
func (r *NoteRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID), nil
}
