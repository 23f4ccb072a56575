// Package postgres реализует хранилище заметок на Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"yanote/internal/notes/domain/entities"
	"yanote/internal/notes/ports/repositories"
	"yanote/pkg/logger"
)

const uniqueViolationCode = "23505"

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

const noteColumns = `id, title, text, slug, author_id, created_at, updated_at`

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("authorID", note.AuthorID), zap.String("slug", note.Slug))

	created, err := scanNote(r.pool.QueryRow(ctx,
		`INSERT INTO notes (title, text, slug, author_id) VALUES ($1, $2, $3, $4) RETURNING `+noteColumns,
		note.Title, note.Text, note.Slug, note.AuthorID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "slug already taken", zap.String("slug", note.Slug))
			return nil, entities.ErrSlugTaken
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", created.ID))
	return created, nil
}

// FindBySlug получает заметку по slug.
func (r *NoteRepository) FindBySlug(ctx context.Context, slug string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindBySlug"))

	note, err := scanNote(r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE slug = $1`,
		slug,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("slug", slug))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// FindByAuthor получает заметки автора в порядке создания.
func (r *NoteRepository) FindByAuthor(ctx context.Context, authorID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindByAuthor"))
	log.Debug(ctx, "listing notes", zap.String("authorID", authorID))

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE author_id = $1 ORDER BY id ASC`,
		authorID,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating notes", zap.Error(err))
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	log.Debug(ctx, "notes listed", zap.Int("count", len(notes)))
	return notes, nil
}

// Update сохраняет заголовок и текст заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.Int64("noteID", note.ID))

	err := r.pool.QueryRow(ctx,
		`UPDATE notes SET title = $1, text = $2, updated_at = NOW() WHERE id = $3 RETURNING updated_at`,
		note.Title, note.Text, note.ID,
	).Scan(&note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", note.ID))
			return entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

// Delete удаляет заметку по ID.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.Int64("noteID", id))

	result, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.Int64("noteID", id))
		return entities.ErrNoteNotFound
	}

	return nil
}

// SlugExists проверяет, занят ли slug.
func (r *NoteRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notes WHERE slug = $1)`,
		slug,
	).Scan(&exists)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to check slug", zap.String("slug", slug), zap.Error(err))
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// Count возвращает общее число заметок.
func (r *NoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count); err != nil {
		logger.Log(ctx).Error(ctx, "failed to count notes", zap.Error(err))
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(&note.ID, &note.Title, &note.Text, &note.Slug, &note.AuthorID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &note, nil
}
