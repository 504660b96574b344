package mcp

import (
	"github.com/Buttje/mcp-fess/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs queries, suggestions and popular words against Fess.
	Search driving.SearchService

	// Labels lists and validates label scopes.
	Labels driving.LabelService

	// Content serves extracted document text.
	Content driving.ContentService

	// Jobs reports progress of snippet enrichment.
	Jobs driving.JobService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	switch {
	case p.Search == nil:
		return ErrMissingSearchService
	case p.Labels == nil:
		return ErrMissingLabelService
	case p.Content == nil:
		return ErrMissingContentService
	case p.Jobs == nil:
		return ErrMissingJobService
	}
	return nil
}
