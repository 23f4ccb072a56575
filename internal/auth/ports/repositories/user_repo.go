package repositories

import (
	"context"

	"yanote/internal/auth/domain/entities"
)

// UserRepository хранит учетные записи.
type UserRepository interface {
	// Create возвращает services.ErrUsernameTaken, если имя занято.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)
}
