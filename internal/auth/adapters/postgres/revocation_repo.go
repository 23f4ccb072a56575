package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yanote/internal/auth/ports/repositories"
	"yanote/pkg/logger"
)

// RevocationRepository хранит отозванные токены в таблице revoked_tokens.
type RevocationRepository struct {
	pool PgxPoolInterface
}

// NewRevocationRepository создает репозиторий отозванных токенов.
func NewRevocationRepository(pool PgxPoolInterface) repositories.RevocationRepository {
	return &RevocationRepository{pool: pool}
}

// Revoke помечает токен отозванным до expiresAt.
func (r *RevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	log := logger.Log(ctx).With(zap.String("repository", "revocation"), zap.String("method", "Revoke"))

	query := `
        INSERT INTO revoked_tokens (token_id, expires_at)
        VALUES ($1, $2)
        ON CONFLICT (token_id) DO NOTHING
    `

	if _, err := r.pool.Exec(ctx, query, tokenID, expiresAt.UTC()); err != nil {
		log.Error(ctx, "error revoking token", zap.Error(err))
		return fmt.Errorf("error revoking token: %w", err)
	}

	return nil
}

// IsRevoked сообщает, отозван ли еще не истекший токен.
func (r *RevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "revocation"), zap.String("method", "IsRevoked"))

	query := `
        SELECT EXISTS (
            SELECT 1 FROM revoked_tokens
            WHERE token_id = $1 AND expires_at > NOW()
        )
    `

	var revoked bool
	if err := r.pool.QueryRow(ctx, query, tokenID).Scan(&revoked); err != nil {
		log.Error(ctx, "error checking token revocation", zap.Error(err))
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}

	return revoked, nil
}

// DeleteExpired удаляет записи об истекших токенах.
func (r *RevocationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "revocation"), zap.String("method", "DeleteExpired"))

	result, err := r.pool.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		log.Error(ctx, "error deleting expired tokens", zap.Error(err))
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}

	log.Debug(ctx, "expired tokens deleted", zap.Int64("count", result.RowsAffected()))
	return result.RowsAffected(), nil
}
