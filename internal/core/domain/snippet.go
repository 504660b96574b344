package domain

// Default highlight tags.
const (
	DefaultTagPre  = "<em>"
	DefaultTagPost = "</em>"
)

// SnippetSourceField names the index fields snippets are generated from.
const SnippetSourceField = "content/body/digest"

// SnippetArgs are the caller-supplied snippet settings. Nil means "use the
// configured default".
type SnippetArgs struct {
	SizeChars    *int
	Fragments    *int
	Docs         *int
	ScanMaxChars *int
	TagPre       *string
	TagPost      *string
}

// SnippetParams are the effective snippet settings after defaults and
// clamping were applied.
type SnippetParams struct {
	SizeChars      int
	Fragments      int
	Docs           int
	ScanMaxChars   int
	MatchCapFactor int
	TagPre         string
	TagPost        string

	// Clamped is true when at least one supplied value was adjusted to fit
	// the configured bounds.
	Clamped bool
}

// SnippetResult is attached to an enriched hit under the "mcp_snippets" key.
type SnippetResult struct {
	RequestedSizeChars *int     `json:"requested_size_chars"`
	EffectiveSizeChars int      `json:"effective_size_chars"`
	RequestedFragments *int     `json:"requested_fragments"`
	EffectiveFragments int      `json:"effective_fragments"`
	SourceField        string   `json:"source_field"`
	Snippets           []string `json:"snippets"`
	Clamped            bool     `json:"clamped"`
}

// Map converts the result to a JSON-ready record for embedding in a hit.
func (r SnippetResult) Map() map[string]any {
	return map[string]any{
		"requested_size_chars": intOrNil(r.RequestedSizeChars),
		"effective_size_chars": r.EffectiveSizeChars,
		"requested_fragments":  intOrNil(r.RequestedFragments),
		"effective_fragments":  r.EffectiveFragments,
		"source_field":         r.SourceField,
		"snippets":             r.Snippets,
		"clamped":              r.Clamped,
	}
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
