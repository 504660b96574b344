package domain

import "time"

// JobState is the lifecycle state of a Job.
type JobState string

// Job states.
const (
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// Job tracks the progress of a long-running operation.
type Job struct {
	ID        string    `json:"jobId"`
	Kind      string    `json:"kind"`
	State     JobState  `json:"state"`
	Progress  int       `json:"progress"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
