package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a camelCase or PascalCase string to snake_case.
// Acronyms are kept together, so "HTTPServer" becomes "http_server" and
// "userID" becomes "user_id".
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]

			lowerOrDigitBefore := unicode.IsLower(prev) || unicode.IsDigit(prev)

			acronymEnd := false
			if unicode.IsUpper(prev) && i+1 < len(runes) {
				acronymEnd = unicode.IsLower(runes[i+1])
			}

			if lowerOrDigitBefore || acronymEnd {
				b.WriteRune('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
