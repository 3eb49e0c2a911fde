package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rex/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips script injection", input: `<p>Hello</p><script>alert('xss')</script>`, expected: "Hello"},
		{name: "strips nested tags", input: `<div><p>nested <span>content</span></p></div>`, expected: "nested content"},
		{name: "strips event handlers", input: `<img src="x" onerror="alert('xss')">`, expected: ""},
		{name: "keeps link text", input: `<a href="javascript:alert('xss')">click</a>`, expected: "click"},
		{name: "keeps plain text", input: "John Doe", expected: "John Doe"},
		{name: "keeps ampersands", input: "Tom & Jerry <b>!</b>", expected: "Tom & Jerry !"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	got := sanitizer.SanitizeHTML(`<p>Hi <strong>there</strong></p><script>x()</script>`)
	assert.Equal(t, `<p>Hi <strong>there</strong></p>`, got)
}

func TestStripInput(t *testing.T) {
	t.Parallel()

	input := map[string]any{
		"name":     "<b>John</b>",
		"password": "<secret>",
		"age":      float64(30),
		"tags":     []any{"<i>a</i>", "b"},
		"profile":  map[string]any{"bio": "<p>hi</p>"},
	}

	got := sanitizer.StripInput(input, "password")

	assert.Equal(t, map[string]any{
		"name":     "John",
		"password": "<secret>",
		"age":      float64(30),
		"tags":     []any{"a", "b"},
		"profile":  map[string]any{"bio": "hi"},
	}, got)
	assert.Equal(t, "<b>John</b>", input["name"], "input must not be modified")
}
