package driving

import (
	"context"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// ContentService serves the extracted text of indexed documents.
// Text methods return domain.ErrContentDisabled when content fetch is off.
type ContentService interface {
	// Chunk returns a character window of a document's text.
	// A nil length means the maximum chunk size.
	Chunk(ctx context.Context, docID string, offset int, length *int) (domain.ContentChunk, error)

	// ByID returns a document's text, truncated to the maximum chunk size.
	ByID(ctx context.Context, docID string) (domain.ContentDocument, error)

	// Resource returns a document's text for resource reads, with a
	// notice appended when it was truncated.
	Resource(ctx context.Context, docID string) (string, error)

	// Metadata returns the indexed record for a document.
	Metadata(ctx context.Context, docID string) (domain.Record, error)
}
