package match

import (
	"strings"
	"unicode"
)

// Tokenize splits an identifier on separators and CamelCase boundaries.
//
//   - "OrderID" -> ["Order", "ID"]
//   - "timeout_seconds" -> ["timeout", "seconds"]
//   - "XMLParser" -> ["XML", "Parser"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

// KebabCase lowercases the tokens of s and joins them with '-'.
// "TimeoutSeconds" and "timeout_seconds" both become "timeout-seconds".
func KebabCase(s string) string {
	tokens := Tokenize(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return strings.Join(tokens, "-")
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether a new token begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "orderID": lower to upper.
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": last upper of an acronym followed by lower.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
