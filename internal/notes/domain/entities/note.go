// Package entities содержит сущности сервиса заметок.
package entities

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Ограничения полей заметки.
const (
	MaxTitleLength = 100
	MaxSlugLength  = 100
)

// Ошибки домена заметок.
var (
	ErrNoteNotFound           = errors.New("note not found")
	ErrSlugTaken              = errors.New("slug already taken")
	ErrAuthenticationRequired = errors.New("authentication required")
)

// Note - заметка пользователя. ID задает порядок создания.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Slug      string    `json:"slug"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy сообщает, принадлежит ли заметка пользователю userID.
func (n *Note) OwnedBy(userID string) bool {
	return n != nil && userID != "" && n.AuthorID == userID
}

// NoteForm - данные формы добавления и редактирования.
type NoteForm struct {
	Title string `json:"title" form:"title"`
	Text  string `json:"text" form:"text"`
	Slug  string `json:"slug" form:"slug"`
}

// Normalize обрезает пробелы по краям значений.
func (f NoteForm) Normalize() NoteForm {
	return NoteForm{
		Title: strings.TrimSpace(f.Title),
		Text:  strings.TrimSpace(f.Text),
		Slug:  strings.TrimSpace(f.Slug),
	}
}

// Validate проверяет заголовок и текст. Slug проверяется отдельно.
func (f NoteForm) Validate() *ValidationError {
	verr := &ValidationError{}
	if f.Title == "" {
		verr.Add("title", msgRequired)
	} else if utf8.RuneCountInString(f.Title) > MaxTitleLength {
		verr.Add("title", msgTitleTooLong)
	}
	if f.Text == "" {
		verr.Add("text", msgRequired)
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
