// Package slugs строит и проверяет slug заметок.
package slugs

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"yanote/internal/notes/domain/entities"
)

// Fallback используется, если из заголовка не получилось ни одного символа.
const Fallback = "note"

var pattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Valid сообщает, подходит ли s как slug заметки.
func Valid(s string) bool {
	return len(s) <= entities.MaxSlugLength && pattern.MatchString(s)
}

// FromTitle транслитерирует заголовок в slug длиной не более MaxSlugLength.
func FromTitle(title string) string {
	s := slug.MakeLang(title, "ru")
	s = truncate(s, entities.MaxSlugLength)
	if s == "" {
		return Fallback
	}
	return s
}

// WithSuffix возвращает base с суффиксом -n, укорачивая base, чтобы уложиться в лимит.
func WithSuffix(base string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	return truncate(base, entities.MaxSlugLength-len(suffix)) + suffix
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		s = s[:limit]
	}
	return strings.Trim(s, "-")
}
