package driving

import "github.com/Buttje/mcp-fess/internal/core/domain"

// JobService tracks long-running operations.
type JobService interface {
	// Start registers a new running job and returns it.
	Start(kind string, total int) domain.Job

	// Progress records completed units of work.
	Progress(jobID string, completed int, message string)

	// Finish marks a job done, or failed when err is non-nil.
	Finish(jobID string, err error)

	// Get returns a snapshot of a job.
	// Returns domain.ErrNotFound for unknown or evicted jobs.
	Get(jobID string) (domain.Job, error)
}
