package collections

import "strings"

// Apply applies the applicator function to each item in the input slice.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}
	return result
}

// Cap returns at most max leading items and the number of items dropped.
// A non-positive max keeps everything.
func Cap[T any](items []T, max int) ([]T, int) {
	if max <= 0 || len(items) <= max {
		return items, 0
	}
	return items[:max], len(items) - max
}

// Compact trims each string and drops the ones left empty.
func Compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitCompact splits s on sep and compacts the pieces.
// Example: SplitCompact("a, ,b", ",") -> ["a", "b"]
func SplitCompact(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return Compact(strings.Split(s, sep))
}
