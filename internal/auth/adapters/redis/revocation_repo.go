// Package redis хранит отозванные токены в Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yanote/internal/auth/ports/repositories"
	"yanote/pkg/logger"
)

const keyPrefix = "notes:revoked:"

// KeyValueStore - операции Redis, нужные хранилищу.
type KeyValueStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RevocationRepository хранит jti отозванных токенов с TTL до их истечения.
type RevocationRepository struct {
	store KeyValueStore
	now   func() time.Time
}

// NewRevocationRepository создает хранилище поверх store.
func NewRevocationRepository(store KeyValueStore) repositories.RevocationRepository {
	return &RevocationRepository{store: store, now: time.Now}
}

// Revoke сохраняет ключ с TTL до expiresAt. Истекшие токены не сохраняются.
func (r *RevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	if err := r.store.Set(ctx, keyPrefix+tokenID, "1", ttl); err != nil {
		logger.Log(ctx).Error(ctx, "failed to revoke token in redis", zap.Error(err))
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IsRevoked проверяет наличие ключа.
func (r *RevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ok, err := r.store.Exists(ctx, keyPrefix+tokenID)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to check token revocation in redis", zap.Error(err))
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return ok, nil
}
