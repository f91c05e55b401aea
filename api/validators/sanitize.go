package validators

import "strings"

// SanitizeString trims whitespace and caps the value at maxLen runes, so
// multi-byte characters are never split mid-sequence.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return trimmed
}

// NormalizeEmail lowercases and trims an email so lookups stay
// case-insensitive without a DB collation.
func NormalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
