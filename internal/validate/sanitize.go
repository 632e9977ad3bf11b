package validate

import (
	"strings"
	"unicode"
)

// SanitizeName cleans a user-entered name or title for storage: trims
// whitespace and strips control characters. Accents and emoji pass through.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)

	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// CollapseSpaces folds runs of whitespace into single spaces. Used for
// chat input captured from dictation, which tends to carry stray newlines.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
