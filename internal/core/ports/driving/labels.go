package driving

import (
	"context"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// LabelService exposes the label catalog.
type LabelService interface {
	// List returns the merged catalog of configured and Fess labels.
	List(ctx context.Context) (domain.LabelCatalog, error)

	// Validate checks that a label may be used as a search scope.
	// Returns domain.ErrUnknownLabel in strict mode.
	Validate(ctx context.Context, label string) error

	// DefaultLabel returns the scope used when a request names none.
	DefaultLabel() string
}
