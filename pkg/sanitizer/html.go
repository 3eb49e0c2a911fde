package sanitizer

import (
	"html"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// StripHTML removes every tag and returns plain text.
// Entities escaped by the policy are decoded back, so "a & b" survives.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeHTML keeps basic formatting tags and links, dropping everything else.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// StripInput returns a copy of input with StripHTML applied to every string,
// including strings nested in maps and lists. Top-level keys in skip are
// copied untouched, e.g. passwords.
func StripInput(input map[string]any, skip ...string) map[string]any {
	out := make(map[string]any, len(input))
	for k, v := range input {
		if slices.Contains(skip, k) {
			out[k] = v
			continue
		}
		out[k] = stripValue(v)
	}
	return out
}

func stripValue(v any) any {
	switch t := v.(type) {
	case string:
		return StripHTML(t)
	case map[string]any:
		return StripInput(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = stripValue(item)
		}
		return out
	case []string:
		out := make([]string, len(t))
		for i, item := range t {
			out[i] = StripHTML(item)
		}
		return out
	default:
		return v
	}
}
