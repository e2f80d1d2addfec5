package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"punctuation and case", "Hello, World!", "hello world"},
		{"whitespace runs", "  Sprint \t\n Planning  ", "sprint planning"},
		{"digits kept", "Takes 2 weeks.", "takes 2 weeks"},
		{"only punctuation", "?!...", ""},
		{"hyphen dropped", "e-commerce", "ecommerce"},
		{"underscore dropped", "snake_case", "snakecase"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Agile is an iterative software development methodology.",
		"  What's   THE   answer?? ",
		"Ünïcode Façade — test",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("The Scrum Master is responsible for the process, and the team does it.")
	assert.Contains(t, got, "scrum")
	assert.Contains(t, got, "master")
	assert.Contains(t, got, "responsible")
	assert.Contains(t, got, "process")
	assert.Contains(t, got, "team")
	assert.NotContains(t, got, "the")
	assert.NotContains(t, got, "does")
	assert.NotContains(t, got, "it")

	assert.Empty(t, ExtractKeywords("is a an of"))
}

func TestTruncateAtWord(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, TruncateAtWord(short, 100))

	long := strings.Repeat("word ", 40)
	cut := TruncateAtWord(long, 100)
	assert.LessOrEqual(t, Len(cut), 100)
	assert.True(t, strings.HasSuffix(cut, Ellipsis))
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(cut, Ellipsis), " "))

	noSpaces := strings.Repeat("x", 120)
	cut = TruncateAtWord(noSpaces, 100)
	assert.Equal(t, 100, Len(cut))
}

func TestStartsUpper(t *testing.T) {
	assert.True(t, StartsUpper("Agile"))
	assert.False(t, StartsUpper("agile"))
	assert.False(t, StartsUpper(""))
	assert.False(t, StartsUpper("1 Agile"))
}
