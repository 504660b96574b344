package domain

// DefaultPageSize is the number of hits returned when a request sets none.
const DefaultPageSize = 20

// DefaultSuggestCount is the number of suggestions returned by default.
const DefaultSuggestCount = 10

// SearchRequest is a search as issued by an agent.
type SearchRequest struct {
	Query         string
	Label         *string
	PageSize      *int
	Start         int
	Sort          string
	Lang          string
	IncludeFields []string

	// Snippets enables client-side snippet generation for the first hits.
	Snippets bool
	Snippet  SnippetArgs
}

// SearchParams is a search as sent to Fess.
type SearchParams struct {
	Query       string
	LabelFilter string
	Start       int
	Num         int
	Sort        string
	Lang        string
}

// SuggestRequest asks for query suggestions.
type SuggestRequest struct {
	Prefix string
	Num    *int
	Fields []string
	Lang   string
}

// SuggestParams is a suggest call as sent to Fess.
type SuggestParams struct {
	Prefix string
	Label  string
	Num    int
	Fields []string
	Lang   string
}

// PopularWordsParams is a popular-words call as sent to Fess.
type PopularWordsParams struct {
	Label string
	Seed  *int
	Field string
}
