package snippet

import (
	"fmt"
	"sort"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// Ellipsis marks text cut away before or after a snippet window.
const Ellipsis = "…"

// DefaultMatchCapFactor bounds collected match positions to
// MaxFragments*DefaultMatchCapFactor when Options.MatchCapFactor is unset.
const DefaultMatchCapFactor = 5

// ErrInvalidArgument is returned when Options fail validation.
var ErrInvalidArgument = domain.ErrInvalidArgument

// Options controls snippet generation.
type Options struct {
	// WindowChars is the width of each excerpt window in characters.
	WindowChars int

	// MaxFragments caps the number of snippets returned.
	MaxFragments int

	// ScanMaxChars bounds the prefix of the text searched for matches.
	ScanMaxChars int

	// OpenTag and CloseTag surround every highlighted term.
	OpenTag  string
	CloseTag string

	// MatchCapFactor multiplies MaxFragments to give the maximum number of
	// match positions collected while scanning. Zero or negative selects
	// DefaultMatchCapFactor.
	MatchCapFactor int
}

// Validate checks the numeric limits.
func (o Options) Validate() error {
	if o.WindowChars < 1 {
		return fmt.Errorf("%w: window size must be a positive integer, got %d", ErrInvalidArgument, o.WindowChars)
	}
	if o.MaxFragments < 1 {
		return fmt.Errorf("%w: fragment count must be a positive integer, got %d", ErrInvalidArgument, o.MaxFragments)
	}
	if o.ScanMaxChars < 1 {
		return fmt.Errorf("%w: scan max chars must be a positive integer, got %d", ErrInvalidArgument, o.ScanMaxChars)
	}
	return nil
}

func (o Options) matchCap() int {
	factor := o.MatchCapFactor
	if factor <= 0 {
		factor = DefaultMatchCapFactor
	}
	return o.MaxFragments * factor
}

// Window is a half-open [Start, End) rune interval of the full text chosen as
// excerpt context.
type Window struct {
	Start int
	End   int
}

// Generate returns up to opts.MaxFragments highlighted excerpts of text around
// occurrences of terms.
//
// Empty text yields no snippets. When terms is empty, or none of them occur in
// the scanned prefix, a single unhighlighted snippet with the start of the text
// is returned.
func Generate(text string, terms []string, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return []string{}, nil
	}

	windows := selectWindows(runes, terms, opts)
	if len(windows) == 0 {
		return []string{leading(runes, opts.WindowChars)}, nil
	}

	snippets := make([]string, 0, len(windows))
	for _, w := range windows {
		snippets = append(snippets, render(runes, w, terms, opts))
	}
	return snippets, nil
}

// Windows returns the excerpt windows Generate would render for text. The
// result is empty when Generate would fall back to the start of the text.
func Windows(text string, terms []string, opts Options) ([]Window, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return selectWindows([]rune(text), terms, opts), nil
}

func selectWindows(text []rune, terms []string, opts Options) []Window {
	if len(text) == 0 || len(terms) == 0 {
		return nil
	}

	positions := matchPositions(text, terms, opts)
	if len(positions) == 0 {
		return nil
	}
	sort.Ints(positions)

	size := opts.WindowChars
	half := size / 2

	var windows []Window
	lastEnd := -1
	for _, pos := range positions {
		start := max(0, pos-half)
		end := min(len(text), start+size)
		if end-start < size {
			start = max(0, end-size)
		}

		if start < lastEnd {
			continue
		}

		windows = append(windows, Window{Start: start, End: end})
		lastEnd = end

		if len(windows) >= opts.MaxFragments {
			break
		}
	}
	return windows
}

// matchPositions collects distinct match offsets in discovery order, looking
// only inside the first opts.ScanMaxChars characters and stopping once the
// match cap is reached.
func matchPositions(text []rune, terms []string, opts Options) []int {
	limit := min(len(text), opts.ScanMaxChars)
	scan := fold(text[:limit])
	capacity := opts.matchCap()

	var positions []int
	seen := make(map[int]struct{})
	for _, term := range terms {
		needle := fold([]rune(term))
		for pos := 0; pos < limit && len(positions) < capacity; {
			idx := indexRunes(scan, needle, pos, limit)
			if idx < 0 {
				break
			}
			if _, ok := seen[idx]; !ok {
				seen[idx] = struct{}{}
				positions = append(positions, idx)
			}
			pos = idx + 1
		}
	}
	return positions
}

func render(text []rune, w Window, terms []string, opts Options) string {
	var prefix, suffix string
	if w.Start > 0 {
		prefix = Ellipsis
	}
	if w.End < len(text) {
		suffix = Ellipsis
	}
	return prefix + Highlight(string(text[w.Start:w.End]), terms, opts.OpenTag, opts.CloseTag) + suffix
}

// leading returns the first size characters of text, with a trailing
// ellipsis when text is longer.
func leading(text []rune, size int) string {
	if len(text) <= size {
		return string(text)
	}
	return string(text[:size]) + Ellipsis
}
