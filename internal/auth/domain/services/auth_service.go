package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUsernameTaken         = errors.New("user with this username already exists")
	ErrRevokedToken          = errors.New("token has been revoked")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// Session - результат успешного входа.
type Session struct {
	UserID      string
	Username    string
	AccessToken string
	TokenID     string
	ExpiresAt   time.Time
}
