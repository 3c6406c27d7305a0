package content_test

import (
	"strings"
	"testing"
	"time"

	"github.com/alkime/stylepost/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	html, err := content.RenderHTML("# Title\n\nSee [our guide](https://example.com/guide).\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, `<a href="https://example.com/guide">our guide</a>`)
	assert.Contains(t, html, "<table>")
}

func TestDiff(t *testing.T) {
	assert.Empty(t, content.Diff("same\n", "same"))

	d := content.Diff("line one\nteh typo\n", "line one\nthe typo\n")
	assert.True(t, strings.HasPrefix(d, "--- draft.md\n+++ final.md\n"), d)
	assert.Contains(t, d, "-teh typo")
	assert.Contains(t, d, "+the typo")
}

func TestWithFrontmatter(t *testing.T) {
	out, err := content.WithFrontmatter(content.Frontmatter{
		Title:     "Remote Work",
		Date:      time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Draft:     true,
		Reference: "ExampleBlog.com",
	}, "\nBody text.\n\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "---\ntitle: Remote Work\n"), out)
	assert.Contains(t, out, "draft: true\n")
	assert.Contains(t, out, "reference: ExampleBlog.com\n")
	assert.NotContains(t, out, "topics:")
	assert.True(t, strings.HasSuffix(out, "---\n\nBody text.\n"), out)
}
