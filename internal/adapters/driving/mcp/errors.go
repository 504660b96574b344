// Package mcp exposes a Fess knowledge domain to agents over the Model
// Context Protocol. Tools and resources are named after the configured
// domain id so several domains can be mounted side by side in one client.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingLabelService is returned when the label service is not provided.
	ErrMissingLabelService = errors.New("mcp: label service is required")

	// ErrMissingContentService is returned when the content service is not provided.
	ErrMissingContentService = errors.New("mcp: content service is required")

	// ErrMissingJobService is returned when the job service is not provided.
	ErrMissingJobService = errors.New("mcp: job service is required")

	// ErrNonLocalBind is returned when the HTTP transport would listen on a
	// non-loopback address without being allowed to.
	ErrNonLocalBind = errors.New("mcp: non-localhost binding requires security.allowNonLocalhostBind=true")
)
