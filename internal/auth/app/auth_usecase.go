// Package app содержит сценарии раздела пользователей.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"yanote/internal/auth/domain/entities"
	"yanote/internal/auth/domain/services"
	"yanote/internal/auth/ports/api"
	"yanote/internal/auth/ports/repositories"
	svc "yanote/internal/auth/ports/services"
	"yanote/pkg/logger"
)

const (
	methodSignup       = "Signup"
	methodLogin        = "Login"
	methodLogout       = "Logout"
	methodAuthenticate = "Authenticate"

	msgStartSignup         = "starting user signup"
	msgInvalidUsername     = "invalid username"
	msgInvalidPassword     = "invalid password"
	msgPasswordsMismatch   = "password confirmation mismatch"
	msgUsernameTaken       = "username already taken"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent username"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgLogoutInvalidToken  = "logout with invalid token, nothing to revoke"
	msgUserLoggedOut       = "user logged out successfully"
	msgRevokedTokenUsed    = "attempt to use revoked token"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by username"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate access token"
	msgErrRevokingToken     = "failed to revoke token"
	msgErrCheckRevocation   = "failed to check token revocation"

	errCtxValidatingUsername = "validating username"
	errCtxValidatingPassword = "validating password"
	errCtxCheckingUser       = "checking existing user"
	errCtxUsernameRegistered = "username already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingToken    = "generating access token"
	errCtxRevokingToken      = "revoking token"
	errCtxValidatingToken    = "validating token"
	errCtxCheckingRevocation = "checking revocation"
)

// AuthUseCaseImpl реализует api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo       repositories.UserRepository
	revocationRepo repositories.RevocationRepository
	passwordSvc    svc.PasswordService
	tokenSvc       svc.TokenService
}

// NewAuthUseCase создает сервис аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	revocationRepo repositories.RevocationRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:       userRepo,
		revocationRepo: revocationRepo,
		passwordSvc:    passwordSvc,
		tokenSvc:       tokenSvc,
	}
}

// Signup регистрирует пользователя.
func (a *AuthUseCaseImpl) Signup(ctx context.Context, username, password, passwordConfirm string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignup), zap.String("username", username))
	log.Debug(ctx, msgStartSignup)

	if err := entities.ValidateUsername(username); err != nil {
		log.Debug(ctx, msgInvalidUsername, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, err)
	}
	if err := entities.ValidatePassword(password); err != nil {
		log.Debug(ctx, msgInvalidPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}
	if password != passwordConfirm {
		log.Debug(ctx, msgPasswordsMismatch)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordsMismatch)
	}

	existing, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil {
		log.Debug(ctx, msgUsernameTaken)
		return nil, fmt.Errorf("%s: %w", errCtxUsernameRegistered, services.ErrUsernameTaken)
	}

	hash, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, &entities.User{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			log.Debug(ctx, msgUsernameTaken)
		} else {
			log.Error(ctx, msgErrCreateUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", created.ID))
	return created, nil
}

// Login проверяет учетные данные и выпускает токен доступа.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	token, claims, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return &services.Session{
		UserID:      user.ID,
		Username:    user.Username,
		AccessToken: token,
		TokenID:     claims.TokenID,
		ExpiresAt:   claims.ExpiresAt,
	}, nil
}

// Logout отзывает токен до истечения его срока.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	if token == "" {
		return nil
	}

	claims, err := a.tokenSvc.ValidateAccessToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgLogoutInvalidToken, zap.Error(err))
		return nil
	}

	log = log.With(zap.String("userID", claims.UserID))

	if err := a.revocationRepo.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		log.Error(ctx, msgErrRevokingToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// Authenticate проверяет токен и возвращает его claims.
func (a *AuthUseCaseImpl) Authenticate(ctx context.Context, token string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	claims, err := a.tokenSvc.ValidateAccessToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}

	revoked, err := a.revocationRepo.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error(ctx, msgErrCheckRevocation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingRevocation, err)
	}
	if revoked {
		log.Debug(ctx, msgRevokedTokenUsed, zap.String("userID", claims.UserID))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrRevokedToken)
	}

	return claims, nil
}
