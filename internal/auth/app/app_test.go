package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yanote/internal/auth/app"
	"yanote/internal/auth/domain/entities"
	"yanote/internal/auth/domain/services"
)

var errDatabaseOperation = errors.New("database error")

const (
	testUserID   = "user-1"
	testUsername = "author"
	testPassword = "secret123"
	testHash     = "hashed"
	testToken    = "signed.jwt.token"
	testTokenID  = "jti-1"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockRevocationRepository struct {
	mock.Mock
}

func (m *mockRevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

func (m *mockRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID, username string) (string, *services.JWTClaims, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*services.JWTClaims), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JWTClaims), args.Error(1)
}

type mocks struct {
	users      *mockUserRepository
	revocation *mockRevocationRepository
	passwords  *mockPasswordService
	tokens     *mockTokenService
}

func newMocks() *mocks {
	return &mocks{
		users:      new(mockUserRepository),
		revocation: new(mockRevocationRepository),
		passwords:  new(mockPasswordService),
		tokens:     new(mockTokenService),
	}
}

func (m *mocks) assert(t *testing.T) {
	t.Helper()
	m.users.AssertExpectations(t)
	m.revocation.AssertExpectations(t)
	m.passwords.AssertExpectations(t)
	m.tokens.AssertExpectations(t)
}

func testUser() *entities.User {
	return &entities.User{ID: testUserID, Username: testUsername, PasswordHash: testHash, CreatedAt: time.Now()}
}

func testClaims() *services.JWTClaims {
	now := time.Now()
	return &services.JWTClaims{
		UserID:    testUserID,
		Username:  testUsername,
		TokenID:   testTokenID,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		confirm    string
		setupMocks func(m *mocks)
		wantErr    error
	}{
		{
			name:     "success",
			username: testUsername, password: testPassword, confirm: testPassword,
			setupMocks: func(m *mocks) {
				m.users.On("FindByUsername", mock.Anything, testUsername).Return(nil, entities.ErrUserNotFound).Once()
				m.passwords.On("Hash", mock.Anything, testPassword).Return(testHash, nil).Once()
				m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Username == testUsername && u.PasswordHash == testHash
				})).Return(testUser(), nil).Once()
			},
		},
		{
			name:     "invalid username",
			username: "bad name", password: testPassword, confirm: testPassword,
			setupMocks: func(*mocks) {},
			wantErr:    entities.ErrUsernameInvalid,
		},
		{
			name:     "weak password",
			username: testUsername, password: "password", confirm: "password",
			setupMocks: func(*mocks) {},
			wantErr:    entities.ErrPasswordTooWeak,
		},
		{
			name:     "confirmation mismatch",
			username: testUsername, password: testPassword, confirm: "secret124",
			setupMocks: func(*mocks) {},
			wantErr:    entities.ErrPasswordsMismatch,
		},
		{
			name:     "username taken",
			username: testUsername, password: testPassword, confirm: testPassword,
			setupMocks: func(m *mocks) {
				m.users.On("FindByUsername", mock.Anything, testUsername).Return(testUser(), nil).Once()
			},
			wantErr: services.ErrUsernameTaken,
		},
		{
			name:     "lookup failure",
			username: testUsername, password: testPassword, confirm: testPassword,
			setupMocks: func(m *mocks) {
				m.users.On("FindByUsername", mock.Anything, testUsername).Return(nil, errDatabaseOperation).Once()
			},
			wantErr: errDatabaseOperation,
		},
		{
			name:     "create race lost",
			username: testUsername, password: testPassword, confirm: testPassword,
			setupMocks: func(m *mocks) {
				m.users.On("FindByUsername", mock.Anything, testUsername).Return(nil, entities.ErrUserNotFound).Once()
				m.passwords.On("Hash", mock.Anything, testPassword).Return(testHash, nil).Once()
				m.users.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrUsernameTaken).Once()
			},
			wantErr: services.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)
			uc := app.NewAuthUseCase(m.users, m.revocation, m.passwords, m.tokens)

			user, err := uc.Signup(context.Background(), tt.username, tt.password, tt.confirm)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testUserID, user.ID)
			}
			m.assert(t)
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(m *mocks)
		wantErr    error
	}{
		{
			name:     "success",
			username: testUsername, password: testPassword,
			setupMocks: func(m *mocks) {
				m.users.On("FindByUsername", mock.Anything, testUsername).Return(testUser(), nil).Once()
				m.passwords.On("Verify", mock.Anything, testPassword, testHash).Return(true, nil).Once()
				m.tokens.On("GenerateAccessToken", mock.Anything, testUserID, testUsername).Return(testToken, testClaims(), nil).Once()
			},
		},
		{
			name:       "empty credentials",
			setupMocks: func(*mocks) {},
			wantErr:    services.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost", password: testPassword,
			setupMocks: func(m *mocks) {
				m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, entities.ErrUserNotFound).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: testUsername, password: "wrong1234",
			setupMocks: func(m *mocks) {
				m.users.On("FindByUsername", mock.Anything, testUsername).Return(testUser(), nil).Once()
				m.passwords.On("Verify", mock.Anything, "wrong1234", testHash).Return(false, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "token generation fails",
			username: testUsername, password: testPassword,
			setupMocks: func(m *mocks) {
				m.users.On("FindByUsername", mock.Anything, testUsername).Return(testUser(), nil).Once()
				m.passwords.On("Verify", mock.Anything, testPassword, testHash).Return(true, nil).Once()
				m.tokens.On("GenerateAccessToken", mock.Anything, testUserID, testUsername).
					Return("", nil, services.ErrGeneratingJWTToken).Once()
			},
			wantErr: services.ErrTokenGenerationFailed,
		},
		{
			name:     "repository failure",
			username: testUsername, password: testPassword,
			setupMocks: func(m *mocks) {
				m.users.On("FindByUsername", mock.Anything, testUsername).Return(nil, errDatabaseOperation).Once()
			},
			wantErr: errDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)
			uc := app.NewAuthUseCase(m.users, m.revocation, m.passwords, m.tokens)

			session, err := uc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testToken, session.AccessToken)
				assert.Equal(t, testTokenID, session.TokenID)
				assert.Equal(t, testUsername, session.Username)
			}
			m.assert(t)
		})
	}
}

func TestLogout(t *testing.T) {
	claims := testClaims()

	tests := []struct {
		name       string
		token      string
		setupMocks func(m *mocks)
		wantErr    error
	}{
		{
			name:  "revokes token until expiry",
			token: testToken,
			setupMocks: func(m *mocks) {
				m.tokens.On("ValidateAccessToken", mock.Anything, testToken).Return(claims, nil).Once()
				m.revocation.On("Revoke", mock.Anything, testTokenID, claims.ExpiresAt).Return(nil).Once()
			},
		},
		{
			name:       "empty token",
			setupMocks: func(*mocks) {},
		},
		{
			name:  "invalid token is ignored",
			token: "garbage",
			setupMocks: func(m *mocks) {
				m.tokens.On("ValidateAccessToken", mock.Anything, "garbage").Return(nil, services.ErrInvalidJWTToken).Once()
			},
		},
		{
			name:  "store failure",
			token: testToken,
			setupMocks: func(m *mocks) {
				m.tokens.On("ValidateAccessToken", mock.Anything, testToken).Return(claims, nil).Once()
				m.revocation.On("Revoke", mock.Anything, testTokenID, claims.ExpiresAt).Return(errDatabaseOperation).Once()
			},
			wantErr: errDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)
			uc := app.NewAuthUseCase(m.users, m.revocation, m.passwords, m.tokens)

			err := uc.Logout(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			m.assert(t)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(m *mocks)
		wantErr    error
	}{
		{
			name: "valid token",
			setupMocks: func(m *mocks) {
				m.tokens.On("ValidateAccessToken", mock.Anything, testToken).Return(testClaims(), nil).Once()
				m.revocation.On("IsRevoked", mock.Anything, testTokenID).Return(false, nil).Once()
			},
		},
		{
			name: "revoked token",
			setupMocks: func(m *mocks) {
				m.tokens.On("ValidateAccessToken", mock.Anything, testToken).Return(testClaims(), nil).Once()
				m.revocation.On("IsRevoked", mock.Anything, testTokenID).Return(true, nil).Once()
			},
			wantErr: services.ErrRevokedToken,
		},
		{
			name: "expired token",
			setupMocks: func(m *mocks) {
				m.tokens.On("ValidateAccessToken", mock.Anything, testToken).Return(nil, services.ErrExpiredJWTToken).Once()
			},
			wantErr: services.ErrExpiredJWTToken,
		},
		{
			name: "revocation store failure",
			setupMocks: func(m *mocks) {
				m.tokens.On("ValidateAccessToken", mock.Anything, testToken).Return(testClaims(), nil).Once()
				m.revocation.On("IsRevoked", mock.Anything, testTokenID).Return(false, errDatabaseOperation).Once()
			},
			wantErr: errDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)
			uc := app.NewAuthUseCase(m.users, m.revocation, m.passwords, m.tokens)

			claims, err := uc.Authenticate(context.Background(), testToken)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testUserID, claims.UserID)
			}
			m.assert(t)
		})
	}
}
