package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/ports/driving"
)

// Ensure JobService implements the interface.
var _ driving.JobService = (*JobService)(nil)

// DefaultJobHistory is the number of jobs kept before the oldest is evicted.
const DefaultJobHistory = 256

// JobService is an in-memory job registry.
type JobService struct {
	mu    sync.Mutex
	jobs  map[string]*domain.Job
	order []string
	limit int
	now   func() time.Time
}

// NewJobService creates a registry keeping at most limit jobs.
// A non-positive limit selects DefaultJobHistory.
func NewJobService(limit int) *JobService {
	if limit <= 0 {
		limit = DefaultJobHistory
	}
	return &JobService{
		jobs:  make(map[string]*domain.Job),
		limit: limit,
		now:   time.Now,
	}
}

// Start registers a running job.
func (s *JobService) Start(kind string, total int) domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	job := &domain.Job{
		ID:        uuid.NewString(),
		Kind:      kind,
		State:     domain.JobRunning,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)
	for len(s.order) > s.limit {
		delete(s.jobs, s.order[0])
		s.order = s.order[1:]
	}
	return *job
}

// Progress records completed units and an optional status message.
func (s *JobService) Progress(jobID string, completed int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	job.Completed = completed
	if job.Total > 0 {
		job.Progress = completed * 100 / job.Total
	}
	if message != "" {
		job.Message = message
	}
	job.UpdatedAt = s.now()
}

// Finish marks a job done, or failed when err is non-nil.
func (s *JobService) Finish(jobID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	if err != nil {
		job.State = domain.JobFailed
		job.Message = err.Error()
	} else {
		job.State = domain.JobDone
		job.Progress = 100
		job.Completed = job.Total
	}
	job.UpdatedAt = s.now()
}

// Get returns a snapshot of a job.
func (s *JobService) Get(jobID string) (domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return domain.Job{}, fmt.Errorf("%w: job %s", domain.ErrNotFound, jobID)
	}
	return *job, nil
}
