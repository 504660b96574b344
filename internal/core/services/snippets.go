package services

import (
	"fmt"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// ClampSnippetArgs resolves caller snippet settings against the configured
// limits. Missing values take the defaults; values below 1 are rejected;
// values outside the limits are clamped and reported via Clamped.
func ClampSnippetArgs(args domain.SnippetArgs, limits domain.LimitsConfig) (domain.SnippetParams, error) {
	p := domain.SnippetParams{
		SizeChars:      limits.SnippetDefaultChars,
		Fragments:      limits.SnippetDefaultFragments,
		Docs:           limits.SnippetDefaultDocs,
		ScanMaxChars:   limits.SnippetScanMaxChars,
		MatchCapFactor: limits.SnippetMatchCapFactor,
		TagPre:         domain.DefaultTagPre,
		TagPost:        domain.DefaultTagPost,
	}

	if v := args.SizeChars; v != nil {
		if *v < 1 {
			return domain.SnippetParams{}, positiveIntError("snippet_size_chars")
		}
		switch {
		case *v < limits.SnippetMinChars:
			p.SizeChars = limits.SnippetMinChars
			p.Clamped = true
		case *v > limits.SnippetMaxChars:
			p.SizeChars = limits.SnippetMaxChars
			p.Clamped = true
		default:
			p.SizeChars = *v
		}
	}

	bounded := []struct {
		name  string
		value *int
		max   int
		dst   *int
	}{
		{"snippet_fragments", args.Fragments, limits.SnippetMaxFragments, &p.Fragments},
		{"snippet_docs", args.Docs, limits.SnippetMaxDocs, &p.Docs},
		{"snippet_scan_max_chars", args.ScanMaxChars, limits.SnippetScanMaxChars, &p.ScanMaxChars},
	}
	for _, b := range bounded {
		if b.value == nil {
			continue
		}
		if *b.value < 1 {
			return domain.SnippetParams{}, positiveIntError(b.name)
		}
		if *b.value > b.max {
			*b.dst = b.max
			p.Clamped = true
			continue
		}
		*b.dst = *b.value
	}

	if args.TagPre != nil {
		p.TagPre = *args.TagPre
	}
	if args.TagPost != nil {
		p.TagPost = *args.TagPost
	}
	return p, nil
}

func positiveIntError(name string) error {
	return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidArgument, name)
}
