package postgres

import (
	"yanote/internal/auth/ports/repositories"
)

// RepositoryFactory создает репозитории раздела пользователей.
type RepositoryFactory struct {
	userRepo       repositories.UserRepository
	revocationRepo repositories.RevocationRepository
}

// NewRepositoryFactory создает фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:       NewUserRepository(pool),
		revocationRepo: NewRevocationRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// RevocationRepository возвращает репозиторий отозванных токенов.
func (f *RepositoryFactory) RevocationRepository() repositories.RevocationRepository {
	return f.revocationRepo
}
