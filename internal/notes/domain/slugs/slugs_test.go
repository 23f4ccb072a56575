package slugs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"yanote/internal/notes/domain/slugs"
)

func TestValid(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"the-note", true},
		{"note_1", true},
		{"important-note", true},
		{"", false},
		{"Upper", true},
		{"Mixed_Case-1", true},
		{"dot.slug", false},
		{"with space", false},
		{"заметка", false},
		{strings.Repeat("a", 100), true},
		{strings.Repeat("a", 101), false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.want, slugs.Valid(tt.slug))
		})
	}
}

func TestFromTitle(t *testing.T) {
	t.Run("transliterates cyrillic", func(t *testing.T) {
		got := slugs.FromTitle("Название заметки")
		assert.True(t, slugs.Valid(got), got)
		assert.Equal(t, "nazvanie-zametki", got)
	})

	t.Run("latin", func(t *testing.T) {
		assert.Equal(t, "hello-world", slugs.FromTitle("Hello, World!"))
	})

	t.Run("truncates long titles", func(t *testing.T) {
		got := slugs.FromTitle(strings.Repeat("слово ", 40))
		assert.LessOrEqual(t, len(got), 100)
		assert.True(t, slugs.Valid(got))
		assert.False(t, strings.HasSuffix(got, "-"))
	})

	t.Run("fallback for symbols only", func(t *testing.T) {
		assert.Equal(t, slugs.Fallback, slugs.FromTitle("!!!"))
	})
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "note-2", slugs.WithSuffix("note", 2))

	long := strings.Repeat("a", 100)
	got := slugs.WithSuffix(long, 12)
	assert.Len(t, got, 100)
	assert.True(t, strings.HasSuffix(got, "-12"))
	assert.True(t, slugs.Valid(got))
}
