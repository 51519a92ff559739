package validators

import "strings"

// SanitizeString trims surrounding whitespace, collapses interior whitespace
// runs to a single space and truncates to maxLen runes. Truncation is rune
// based so multibyte customer names and addresses are never cut through a
// codepoint.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Join(strings.Fields(input), " ")
	if maxLen <= 0 {
		return cleaned
	}
	if runes := []rune(cleaned); len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return cleaned
}
