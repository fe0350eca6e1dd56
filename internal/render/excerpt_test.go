package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	t.Run("strips markup", func(t *testing.T) {
		assert.Equal(t, "hello world", Excerpt("<b>hello</b> <script>x()</script>world", 100))
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "a b c", Excerpt("a\n\n b\t c", 100))
	})

	t.Run("truncates long bodies", func(t *testing.T) {
		out := Excerpt(strings.Repeat("x", 500), 120)
		assert.Equal(t, 120+1, len([]rune(out))) // 120 runes plus ellipsis
		assert.True(t, strings.HasSuffix(out, "…"))
	})

	t.Run("short body untouched", func(t *testing.T) {
		assert.Equal(t, "short", Excerpt("short", 120))
	})
}
