package match

import (
	"strings"
)

// pluralSuffixes are stripped so that "inches" meets the label "Inches"
// and the singular "inch" alike. Longer suffixes first.
var pluralSuffixes = []string{"es", "s"}

// Normalize folds s for comparison:
// 1. Case-fold to lower.
// 2. Strip separators (_, -, '.', spaces).
// 3. Strip a plural suffix when something meaningful remains.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return r
	}, s)

	for _, suffix := range pluralSuffixes {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix)+2 {
			return strings.TrimSuffix(s, suffix)
		}
	}

	return s
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' ' || r == '\t'
}
