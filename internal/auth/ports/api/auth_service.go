package api

import (
	"context"

	"yanote/internal/auth/domain/entities"
	"yanote/internal/auth/domain/services"
)

// AuthUseCase - операции раздела пользователей.
type AuthUseCase interface {
	Signup(ctx context.Context, username, password, passwordConfirm string) (*entities.User, error)

	Login(ctx context.Context, username, password string) (*services.Session, error)

	// Logout отзывает токен. Невалидный токен не считается ошибкой.
	Logout(ctx context.Context, token string) error

	// Authenticate проверяет токен и его отзыв.
	Authenticate(ctx context.Context, token string) (*services.JWTClaims, error)
}
