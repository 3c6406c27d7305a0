package topics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alkime/stylepost/pkg/collections"
)

var titleLine = regexp.MustCompile(`^#{0,2}\s*\d+\.\s*(.+)$`)

// Field labels, matched with or without a leading "- ".
const (
	labelAngle       = "**Angle**:"
	labelKeywords    = "**Keywords**:"
	labelRationale   = "**Rationale**:"
	labelContentType = "**Content Type**:"
)

// Parse recovers topic ideas from model output. A numbered title line opens a
// record; labeled lines fill the open record; a record is kept once the next
// title or the end of input closes it. Lines that match nothing are ignored
// and missing fields stay empty. Keyword entries are trimmed but blank ones
// are kept, so "a, ,b" yields three keywords.
func Parse(raw string) []TopicIdea {
	var (
		ideas   []TopicIdea
		current *TopicIdea
	)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if m := titleLine.FindStringSubmatch(line); m != nil {
			if current != nil && current.Title != "" {
				ideas = append(ideas, *current)
			}
			current = &TopicIdea{Title: strings.TrimSpace(m[1])}
			continue
		}

		if current == nil {
			continue
		}

		if v, ok := field(line, labelAngle); ok {
			current.Angle = v
		} else if v, ok := field(line, labelKeywords); ok {
			current.Keywords = collections.Apply(strings.Split(v, ","), strings.TrimSpace)
		} else if v, ok := field(line, labelRationale); ok {
			current.Rationale = v
		} else if v, ok := field(line, labelContentType); ok {
			current.ContentType = v
		}
	}

	if current != nil && current.Title != "" {
		ideas = append(ideas, *current)
	}

	return ideas
}

func field(line, label string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimPrefix(line, "- "), label)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// Format renders ideas in the convention Parse reads. The keywords line is
// left out when an idea has none, since Parse reads an empty line as one
// blank keyword.
func Format(ideas []TopicIdea) string {
	var b strings.Builder
	b.WriteString("# Generated Topic Ideas\n")

	for i, idea := range ideas {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, idea.Title)
		fmt.Fprintf(&b, "- %s %s\n", labelAngle, idea.Angle)
		if len(idea.Keywords) > 0 {
			fmt.Fprintf(&b, "- %s %s\n", labelKeywords, strings.Join(idea.Keywords, ", "))
		}
		fmt.Fprintf(&b, "- %s %s\n", labelRationale, idea.Rationale)
		fmt.Fprintf(&b, "- %s %s\n", labelContentType, idea.ContentType)
	}

	return b.String()
}
