package entities

import (
	"errors"
	"regexp"
	"time"
	"unicode"
	"unicode/utf8"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID       = errors.New("user ID cannot be empty")
	ErrEmptyUsername     = errors.New("username cannot be empty")
	ErrUsernameTooLong   = errors.New("username must contain at most 150 characters")
	ErrUsernameInvalid   = errors.New("username may contain only letters, digits and @/./+/-/_")
	ErrPasswordTooShort  = errors.New("password must contain at least 8 characters")
	ErrPasswordTooWeak   = errors.New("password must contain at least one letter and one digit")
	ErrPasswordsMismatch = errors.New("passwords do not match")
	ErrUserNotFound      = errors.New("user not found")
)

// MaxUsernameLength - максимальная длина имени пользователя.
const MaxUsernameLength = 150

// MinPasswordLength - минимальная длина пароля.
const MinPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// User - учетная запись автора заметок.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return ErrEmptyUsername
	case utf8.RuneCountInString(username) > MaxUsernameLength:
		return ErrUsernameTooLong
	case !usernamePattern.MatchString(username):
		return ErrUsernameInvalid
	}
	return nil
}

// ValidatePassword проверяет сложность пароля.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrPasswordTooWeak
	}
	return nil
}
