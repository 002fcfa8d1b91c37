package util

import (
	"strings"
	"unicode"
)

// htmlEntities maps the characters escaped in free-text form input to
// their entity encodings. The upstream API stores the entity form.
var htmlEntities = map[rune]string{
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#x27;",
	'&':  "&amp;",
}

// SanitizeInput trims a string and escapes HTML-significant characters.
// Control characters other than newline and tab are dropped. Applied to
// every string field of a mutating request before it leaves the process.
func SanitizeInput(input string) string {
	trimmed := strings.TrimSpace(input)

	builder := strings.Builder{}
	builder.Grow(len(trimmed))

	for _, char := range trimmed {
		if entity, ok := htmlEntities[char]; ok {
			builder.WriteString(entity)
			continue
		}

		if unicode.IsControl(char) && char != '\n' && char != '\t' {
			continue
		}

		builder.WriteRune(char)
	}

	return builder.String()
}

// SanitizeSlice sanitizes every element, dropping entries that are empty
// after trimming.
func SanitizeSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		cleaned := SanitizeInput(v)
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}

	return out
}

// SplitTags splits a comma separated tag string into sanitized tags.
func SplitTags(raw string) []string {
	return SanitizeSlice(strings.Split(raw, ","))
}
