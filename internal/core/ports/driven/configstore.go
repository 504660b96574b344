package driven

import (
	"context"

	"github.com/Buttje/mcp-fess/internal/core/domain"
)

// ConfigStore provides access to the server configuration file.
// Implementations handle the file format and default values.
type ConfigStore interface {
	// Load reads, normalises and validates the configuration.
	Load() (domain.Config, error)

	// Watch calls onChange with each valid configuration written to the
	// file until ctx is cancelled. Invalid rewrites are skipped.
	Watch(ctx context.Context, onChange func(domain.Config)) error

	// Path returns the configuration file path.
	Path() string
}
