package driving

import (
	"context"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search queries the index, optionally enriching hits with snippets.
	Search(ctx context.Context, req domain.SearchRequest) (domain.Record, error)

	// Suggest returns query completions.
	Suggest(ctx context.Context, req domain.SuggestRequest) (domain.Record, error)

	// PopularWords returns popular search terms.
	PopularWords(ctx context.Context, label *string, seed *int, field string) (domain.Record, error)

	// Health reports the Fess server status.
	Health(ctx context.Context) (domain.Record, error)
}
