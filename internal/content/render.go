package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts markdown to an HTML fragment.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// Diff returns a unified diff from the draft to the edited post, or "" when
// they are identical.
func Diff(draft, final string) string {
	draft = ensureNewline(draft)
	final = ensureNewline(final)

	edits := myers.ComputeEdits(span.URIFromPath("draft.md"), draft, final)
	if len(edits) == 0 {
		return ""
	}

	return fmt.Sprint(gotextdiff.ToUnified("draft.md", "final.md", draft, edits))
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// Frontmatter is the YAML header written on exported posts.
type Frontmatter struct {
	Title     string    `yaml:"title"`
	Date      time.Time `yaml:"date"`
	Draft     bool      `yaml:"draft"`
	Reference string    `yaml:"reference,omitempty"`
	Topics    []string  `yaml:"topics,omitempty"`
}

// WithFrontmatter prefixes body with fm as a YAML block.
func WithFrontmatter(fm Frontmatter, body string) (string, error) {
	raw, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	return "---\n" + string(raw) + "---\n\n" + strings.TrimSpace(body) + "\n", nil
}
