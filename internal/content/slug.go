// Package content turns pipeline results into files a person can publish.
package content

import (
	"regexp"
	"strings"
)

// MaxSlugLength bounds slugs so they stay usable as file and directory names.
const MaxSlugLength = 60

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
	headingLine  = regexp.MustCompile(`(?m)^#\s+(.+?)\s*#*\s*$`)
)

// GenerateSlug converts a title to a URL-friendly slug.
// Example: "The Future of Remote Work" -> "the-future-of-remote-work"
func GenerateSlug(title string) string {
	// Convert to lowercase
	slug := strings.ToLower(title)

	// Replace spaces with hyphens
	slug = strings.ReplaceAll(slug, " ", "-")

	// Remove special characters (keep alphanumeric and hyphens)
	slug = nonSlugChars.ReplaceAllString(slug, "")

	// Collapse multiple hyphens to single hyphen
	slug = hyphenRuns.ReplaceAllString(slug, "-")

	// Trim hyphens from start and end
	slug = strings.Trim(slug, "-")

	return truncateSlug(slug)
}

// truncateSlug cuts slug to MaxSlugLength, at a hyphen when one is available.
func truncateSlug(slug string) string {
	if len(slug) <= MaxSlugLength {
		return slug
	}

	// slug is ASCII here, so byte offsets are character offsets
	if slug[MaxSlugLength] != '-' {
		cut := slug[:MaxSlugLength]
		if i := strings.LastIndex(cut, "-"); i > 0 {
			return cut[:i]
		}
	}

	return strings.Trim(slug[:MaxSlugLength], "-")
}

// ExtractTitle returns the first H1 heading of a markdown document, or "".
func ExtractTitle(markdown string) string {
	m := headingLine.FindStringSubmatch(markdown)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
