package prompt

import (
	"fmt"
	"strings"

	"github.com/alkime/stylepost/pkg/collections"
)

const (
	// MaxKeywords caps SEO keywords rendered into a prompt.
	MaxKeywords = 10
	// MaxExistingTopics caps existing post titles rendered into a prompt.
	MaxExistingTopics = 50
)

// List is a capped list of prompt values plus the count that did not fit.
type List struct {
	Items    []string
	Overflow int
}

// Cap compacts items and keeps at most max of them.
func Cap(items []string, max int) List {
	kept, overflow := collections.Cap(collections.Compact(items), max)
	return List{Items: kept, Overflow: overflow}
}

// Empty reports whether nothing would be rendered.
func (l List) Empty() bool {
	return len(l.Items) == 0
}

// Note returns "(and N more...)" when items were dropped, else "".
func (l List) Note() string {
	if l.Overflow <= 0 {
		return ""
	}
	return fmt.Sprintf("(and %d more...)", l.Overflow)
}

// Joined renders the items as a comma-separated line.
func (l List) Joined() string {
	return strings.Join(l.Items, ", ")
}

// Bullets renders the items as a markdown bullet list.
func (l List) Bullets() string {
	return bullets(l.Items)
}

func bullets(items []string) string {
	lines := collections.Apply(items, func(s string) string {
		return "- " + s
	})
	return strings.Join(lines, "\n")
}
