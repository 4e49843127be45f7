package entity

import "time"

type JobStatus string

const (
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// ScrapeJob mirrors the `scrape_jobs` table. CompletedAt is set iff Status is terminal,
// Error is set iff Status is FAILED.
type ScrapeJob struct {
	ID          string     `json:"id"`
	Source      Source     `json:"source"`
	Status      JobStatus  `json:"status"`
	Parameters  Params     `json:"parameters"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Results     []Item     `json:"results"`
	Error       *string    `json:"error"`
	// RequestedBy is the user who started the job; only they can read it back.
	RequestedBy string `json:"requestedBy"`
}

func NewScrapeJob(id string, source Source, params Params, now time.Time) *ScrapeJob {
	return &ScrapeJob{
		ID:         id,
		Source:     source,
		Status:     JobStatusRunning,
		Parameters: params.Clone(),
		StartedAt:  now,
		Results:    []Item{},
	}
}

func (j *ScrapeJob) Terminal() bool {
	return j.Status != JobStatusRunning
}

// Complete moves a running job to COMPLETED and stores results verbatim.
func (j *ScrapeJob) Complete(results []Item, now time.Time) error {
	if j.Terminal() {
		return ErrJobTerminal
	}
	if results == nil {
		results = []Item{}
	}
	j.Status = JobStatusCompleted
	j.Results = results
	j.CompletedAt = &now
	return nil
}

// Fail moves a running job to FAILED.
func (j *ScrapeJob) Fail(message string, now time.Time) error {
	if j.Terminal() {
		return ErrJobTerminal
	}
	j.Status = JobStatusFailed
	j.Error = &message
	j.CompletedAt = &now
	return nil
}
