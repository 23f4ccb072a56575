package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"yanote/internal/auth/domain/entities"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "valid", username: "author_1", wantErr: nil},
		{name: "allowed punctuation", username: "a.b@c+d-e", wantErr: nil},
		{name: "cyrillic", username: "Автор_заметок", wantErr: nil},
		{name: "empty", username: "", wantErr: entities.ErrEmptyUsername},
		{name: "too long", username: strings.Repeat("a", 151), wantErr: entities.ErrUsernameTooLong},
		{name: "exact limit", username: strings.Repeat("a", 150), wantErr: nil},
		{name: "space", username: "two words", wantErr: entities.ErrUsernameInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entities.ValidateUsername(tt.username)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid", password: "secret123", wantErr: nil},
		{name: "cyrillic letters count", password: "пароль123", wantErr: nil},
		{name: "too short", password: "ab1", wantErr: entities.ErrPasswordTooShort},
		{name: "digits only", password: "12345678", wantErr: entities.ErrPasswordTooWeak},
		{name: "letters only", password: "password", wantErr: entities.ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entities.ValidatePassword(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
