package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yanote/internal/auth/adapters/postgres"
	"yanote/internal/auth/domain/entities"
	"yanote/internal/auth/domain/services"
)

var errDatabase = errors.New("database error")

const (
	testUserID   = "2b7c3c1e-4a56-4b1e-9c1a-0c9f1f0f3a11"
	testUsername = "author"
	testHash     = "$2a$10$hash"
	testTokenID  = "5f2d9b0c-8d7e-4f6a-b1c2-3d4e5f6a7b8c"
)

var userColumns = []string{"id", "username", "password_hash", "created_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestRepositoryFactory(t *testing.T) {
	mock := newMockPool(t)
	factory := postgres.NewRepositoryFactory(mock)

	require.NotNil(t, factory.UserRepository())
	require.NotNil(t, factory.RevocationRepository())
	assert.Same(t, factory.UserRepository(), factory.UserRepository())
}

func TestUserRepositoryCreate(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").
					WithArgs(testUsername, testHash).
					WillReturnRows(pgxmock.NewRows(userColumns).
						AddRow(testUserID, testUsername, testHash, createdAt))
			},
		},
		{
			name: "username taken",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").
					WithArgs(testUsername, testHash).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantErr: services.ErrUsernameTaken,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").
					WithArgs(testUsername, testHash).
					WillReturnError(errDatabase)
			},
			wantErr: errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setupMock(mock)

			repo := postgres.NewUserRepository(mock)
			user, err := repo.Create(context.Background(), &entities.User{Username: testUsername, PasswordHash: testHash})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testUserID, user.ID)
			assert.Equal(t, createdAt, user.CreatedAt)
		})
	}
}

func TestUserRepositoryFindByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("SELECT id, username, password_hash, created_at").
			WithArgs(testUsername).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(testUserID, testUsername, testHash, time.Now()))

		user, err := postgres.NewUserRepository(mock).FindByUsername(context.Background(), testUsername)
		require.NoError(t, err)
		assert.Equal(t, testHash, user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("SELECT id, username, password_hash, created_at").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		user, err := postgres.NewUserRepository(mock).FindByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
		assert.Nil(t, user)
	})
}

func TestUserRepositoryFindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("WHERE id = ").
			WithArgs(testUserID).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(testUserID, testUsername, testHash, time.Now()))

		user, err := postgres.NewUserRepository(mock).FindByID(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Equal(t, testUsername, user.Username)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("WHERE id = ").
			WithArgs(testUserID).
			WillReturnError(errDatabase)

		_, err := postgres.NewUserRepository(mock).FindByID(context.Background(), testUserID)
		assert.ErrorIs(t, err, errDatabase)
	})
}

func TestRevocationRepository(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	t.Run("revoke", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec("INSERT INTO revoked_tokens").
			WithArgs(testTokenID, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := postgres.NewRevocationRepository(mock).Revoke(context.Background(), testTokenID, expiresAt)
		assert.NoError(t, err)
	})

	t.Run("revoke error", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec("INSERT INTO revoked_tokens").
			WithArgs(testTokenID, pgxmock.AnyArg()).
			WillReturnError(errDatabase)

		err := postgres.NewRevocationRepository(mock).Revoke(context.Background(), testTokenID, expiresAt)
		assert.ErrorIs(t, err, errDatabase)
	})

	t.Run("is revoked", func(t *testing.T) {
		for _, want := range []bool{true, false} {
			mock := newMockPool(t)
			mock.ExpectQuery("SELECT EXISTS").
				WithArgs(testTokenID).
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(want))

			got, err := postgres.NewRevocationRepository(mock).IsRevoked(context.Background(), testTokenID)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("delete expired", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec("DELETE FROM revoked_tokens").
			WillReturnResult(pgxmock.NewResult("DELETE", 3))

		repo := postgres.NewRevocationRepository(mock).(*postgres.RevocationRepository)
		n, err := repo.DeleteExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}
