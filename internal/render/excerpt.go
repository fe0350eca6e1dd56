package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// Excerpt reduces a rich-text body to a short plain-text preview for
// notification payloads: markup stripped, whitespace collapsed, truncated
// to limit runes.
func Excerpt(body string, limit int) string {
	plain := html.UnescapeString(stripPolicy.Sanitize(body))
	plain = strings.Join(strings.Fields(plain), " ")

	runes := []rune(plain)
	if limit > 0 && len(runes) > limit {
		return strings.TrimSpace(string(runes[:limit])) + "…"
	}
	return plain
}
