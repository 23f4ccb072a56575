package services

import (
	"context"

	"yanote/internal/auth/domain/services"
)

// TokenService выпускает и проверяет токены доступа.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, username string) (string, *services.JWTClaims, error)

	ValidateAccessToken(ctx context.Context, token string) (*services.JWTClaims, error)
}
