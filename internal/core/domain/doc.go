// Package domain defines the core business entities for mcp-fess.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Config: The server configuration and its limits
//   - Record: An opaque JSON object returned by Fess
//   - LabelCatalog: Configured labels merged with labels known to Fess
//   - SnippetParams: Effective, clamped snippet generation settings
//   - Job: Progress of a long-running operation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
