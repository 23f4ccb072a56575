package memory

import (
	"context"
	"sync"
	"time"

	"yanote/internal/auth/ports/repositories"
)

// RevocationRepository хранит отозванные токены в map.
// Истекшие записи удаляются при очередном отзыве.
type RevocationRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewRevocationRepository создает пустое хранилище.
func NewRevocationRepository() repositories.RevocationRepository {
	return &RevocationRepository{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke отзывает токен до expiresAt.
func (r *RevocationRepository) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
		}
	}

	if expiresAt.After(now) {
		r.revoked[tokenID] = expiresAt
	}
	return nil
}

// IsRevoked сообщает, отозван ли токен.
func (r *RevocationRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.revoked[tokenID]
	return ok && exp.After(r.now()), nil
}
