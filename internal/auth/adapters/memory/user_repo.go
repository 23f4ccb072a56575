// Package memory содержит хранилища раздела пользователей в памяти процесса.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"yanote/internal/auth/domain/entities"
	"yanote/internal/auth/domain/services"
	"yanote/internal/auth/ports/repositories"
)

// UserRepository хранит пользователей в map.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*entities.User
	byUsername map[string]string
}

// NewUserRepository создает пустой репозиторий.
func NewUserRepository() repositories.UserRepository {
	return &UserRepository{
		byID:       make(map[string]*entities.User),
		byUsername: make(map[string]string),
	}
}

// Create сохраняет пользователя.
func (r *UserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[user.Username]; ok {
		return nil, services.ErrUsernameTaken
	}

	created := &entities.User{
		ID:           uuid.NewString(),
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[created.ID] = created
	r.byUsername[created.Username] = created.ID

	clone := *created
	return &clone, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// FindByUsername находит пользователя по имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.mu.RLock()
	id, ok := r.byUsername[username]
	r.mu.RUnlock()

	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}
