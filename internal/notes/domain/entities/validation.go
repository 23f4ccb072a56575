package entities

import (
	"sort"
	"strings"
)

const (
	msgRequired     = "Обязательное поле."
	msgTitleTooLong = "Не более 100 символов."
	// MsgSlugInvalid - сообщение о недопустимых символах slug.
	MsgSlugInvalid = "Допустимы только латинские буквы, цифры, дефис и подчёркивание, не более 100 символов."
	// MsgSlugTaken - сообщение о занятом slug.
	MsgSlugTaken = " - такой slug уже существует, придумайте уникальное значение!"
	// MsgSlugImmutable - сообщение о попытке сменить slug при редактировании.
	MsgSlugImmutable = "Slug заметки нельзя изменить."
)

// ValidationError содержит ошибки полей формы.
type ValidationError struct {
	Fields map[string][]string
}

// Add добавляет сообщение для поля.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty сообщает об отсутствии ошибок.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Has сообщает, есть ли ошибка у поля.
func (e *ValidationError) Has(field string) bool {
	return e != nil && len(e.Fields[field]) > 0
}

// First возвращает первое сообщение для поля.
func (e *ValidationError) First(field string) string {
	if !e.Has(field) {
		return ""
	}
	return e.Fields[field][0]
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewFieldError создает ошибку одного поля.
func NewFieldError(field, message string) *ValidationError {
	verr := &ValidationError{}
	verr.Add(field, message)
	return verr
}
