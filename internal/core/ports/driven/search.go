package driven

import (
	"context"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// SearchEngine is the remote Fess index.
// Responses are opaque JSON records passed through to agents.
type SearchEngine interface {
	// Search runs a full-text query.
	Search(ctx context.Context, params domain.SearchParams) (domain.Record, error)

	// Suggest returns query completions for a prefix.
	Suggest(ctx context.Context, params domain.SuggestParams) (domain.Record, error)

	// PopularWords returns frequently searched terms.
	PopularWords(ctx context.Context, params domain.PopularWordsParams) (domain.Record, error)

	// Labels returns the labels defined in Fess.
	Labels(ctx context.Context) ([]domain.FessLabel, error)

	// Health reports the Fess server status.
	Health(ctx context.Context) (domain.Record, error)

	// Document returns the indexed record for a document.
	// Returns domain.ErrNotFound if no document has the ID.
	Document(ctx context.Context, docID, labelFilter string) (domain.Record, error)

	// DocumentText returns the extracted full text of a document.
	// Returns domain.ErrNotFound or domain.ErrNoText.
	DocumentText(ctx context.Context, docID, labelFilter string) (string, error)
}

// LabelSource provides Fess labels, possibly from a cache.
type LabelSource interface {
	// Labels returns the known Fess labels. forceRefresh bypasses any cache.
	// An error is returned only when no labels could be obtained at all.
	Labels(ctx context.Context, forceRefresh bool) ([]domain.FessLabel, error)
}
