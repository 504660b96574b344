package snippet

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// operators are the boolean query keywords removed before term extraction.
var operators = []string{"AND", "OR", "NOT"}

// trimSet is the punctuation stripped from both ends of a candidate term.
const trimSet = `.,;:!?()[]{}|\`

// ExtractTerms reduces a raw query string to the literal terms worth
// highlighting. Boolean operators and quotes are removed, punctuation is
// trimmed and single-character tokens are dropped. Terms keep their
// left-to-right order and duplicates are preserved.
func ExtractTerms(query string) []string {
	cleaned := stripOperators(query)
	cleaned = strings.NewReplacer(`"`, "", `'`, "").Replace(cleaned)

	terms := []string{}
	for _, token := range strings.Fields(cleaned) {
		token = strings.Trim(token, trimSet)
		if utf8.RuneCountInString(token) > 1 {
			terms = append(terms, token)
		}
	}
	return terms
}

// stripOperators replaces whole-word, case-insensitive occurrences of the
// boolean operators with a single space.
func stripOperators(query string) string {
	runes := []rune(query)

	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(runes); {
		if n := operatorAt(runes, i); n > 0 {
			b.WriteByte(' ')
			i += n
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

// operatorAt returns the rune length of the operator starting at i, or 0 when
// no operator starts there on a word boundary.
func operatorAt(runes []rune, i int) int {
	if i > 0 && isWordRune(runes[i-1]) {
		return 0
	}
	for _, op := range operators {
		end := i + len(op)
		if end > len(runes) {
			continue
		}
		if !strings.EqualFold(string(runes[i:end]), op) {
			continue
		}
		if end < len(runes) && isWordRune(runes[end]) {
			continue
		}
		return len(op)
	}
	return 0
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
