package strings

import (
	"strings"
)

// DefaultDescriptionMaxLen is the default maximum length for descriptions in help output.
const DefaultDescriptionMaxLen = 60

// DefaultTruncateLen is the default maximum length for table cells such as task descriptions.
const DefaultTruncateLen = 50

// MinTruncateLen is the minimum maxLen value for Truncate and TruncateDescription.
// Values smaller than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

const ellipsis = "..."

// Truncate shortens text to at most maxLen characters, replacing the tail with "..."
// when it does not fit. Text at or under maxLen is returned unchanged.
//
// The result never exceeds maxLen. Lengths are counted in runes so multi-byte
// characters are never split.
func Truncate(text string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// TruncateDescription truncates a string to maxLen characters and ensures single-line output.
// It replaces newlines with spaces, collapses multiple whitespace characters into single spaces,
// and adds "..." if truncated.
//
// Args:
//   - s: The string to truncate
//   - maxLen: Maximum length of the result (including "..." if truncated)
//
// Returns:
//   - Truncated and sanitized string
func TruncateDescription(s string, maxLen int) string {
	return Truncate(strings.Join(strings.Fields(s), " "), maxLen)
}

// ShortID returns the first n characters of id followed by "...", as used for
// node identifiers in tables. IDs that already fit are returned unchanged.
func ShortID(id string, n int) string {
	runes := []rune(id)
	if n <= 0 || len(runes) <= n {
		return id
	}
	return string(runes[:n]) + ellipsis
}
