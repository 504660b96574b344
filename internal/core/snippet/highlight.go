package snippet

import (
	"sort"
	"strings"
	"unicode"
)

// Span is a half-open [Start, End) rune interval marking one highlighted term
// occurrence.
type Span struct {
	Start int
	End   int
}

// overlaps reports whether s shares at least one rune with [start, end).
// Spans that only touch at a boundary do not overlap.
func (s Span) overlaps(start, end int) bool {
	return s.Start < end && s.End > start
}

// Highlight wraps every occurrence of terms in fragment with openTag and
// closeTag. Matching is case-insensitive; the original casing is kept in the
// output.
//
// Longer terms are placed first and an occurrence overlapping an already
// placed span is skipped, so "hello world" wins over "hello" when both match
// the same text. The selection is greedy and deterministic.
func Highlight(fragment string, terms []string, openTag, closeTag string) string {
	if len(terms) == 0 {
		return fragment
	}

	text := []rune(fragment)
	spans := Spans(text, terms)
	if len(spans) == 0 {
		return fragment
	}

	var b strings.Builder
	b.Grow(len(fragment) + len(spans)*(len(openTag)+len(closeTag)))

	pos := 0
	for _, s := range spans {
		b.WriteString(string(text[pos:s.Start]))
		b.WriteString(openTag)
		b.WriteString(string(text[s.Start:s.End]))
		b.WriteString(closeTag)
		pos = s.End
	}
	b.WriteString(string(text[pos:]))
	return b.String()
}

// Spans returns the accepted highlight spans for terms within text, sorted by
// start offset. No two returned spans overlap.
func Spans(text []rune, terms []string) []Span {
	folded := fold(text)

	var spans []Span
	for _, term := range byLengthDesc(terms) {
		needle := fold([]rune(term))
		for pos := 0; pos < len(folded); {
			idx := indexRunes(folded, needle, pos, len(folded))
			if idx < 0 {
				break
			}
			end := idx + len(needle)
			if !overlapsAny(spans, idx, end) {
				spans = append(spans, Span{Start: idx, End: end})
			}
			pos = idx + 1
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	return spans
}

func overlapsAny(spans []Span, start, end int) bool {
	for _, s := range spans {
		if s.overlaps(start, end) {
			return true
		}
	}
	return false
}

// byLengthDesc returns the distinct non-empty terms ordered by descending
// rune length. Equal-length terms keep their input order.
func byLengthDesc(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return len([]rune(out[i])) > len([]rune(out[j]))
	})
	return out
}

// fold lower-cases rune by rune so the folded text has exactly as many runes
// as the input and offsets can be shared between them.
func fold(text []rune) []rune {
	out := make([]rune, len(text))
	for i, r := range text {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// indexRunes returns the first index >= from at which needle occurs entirely
// inside hay[:limit], or -1.
func indexRunes(hay, needle []rune, from, limit int) int {
	if len(needle) == 0 || from < 0 {
		return -1
	}
	for i := from; i+len(needle) <= limit; i++ {
		if hay[i] != needle[0] {
			continue
		}
		match := true
		for j := 1; j < len(needle); j++ {
			if hay[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
