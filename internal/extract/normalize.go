package extract

import "strings"

// NormalizeWhitespace collapses runs of whitespace to a single space and trims the ends.
// It is idempotent.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes shortens s to at most n runes without splitting a character
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return strings.TrimSpace(s[:i])
		}
		count++
	}
	return s
}
