package repositories

import (
	"context"
	"time"
)

// RevocationRepository хранит отозванные токены до истечения их срока.
type RevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
