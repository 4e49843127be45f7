package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/repository"
)

// JobTracker persists the lifecycle of a scrape job.
type JobTracker interface {
	// Start persists a RUNNING job owned by requestedBy with StartedAt set to now.
	Start(ctx context.Context, source entity.Source, params entity.Params, requestedBy string) (*entity.ScrapeJob, error)
	// Complete stores results verbatim and marks the job COMPLETED.
	Complete(ctx context.Context, jobID string, results []entity.Item) error
	// Fail marks the job FAILED with message.
	Fail(ctx context.Context, jobID string, message string) error
	// Get returns entity.ErrJobNotFound for jobs owned by another user.
	Get(ctx context.Context, jobID, userID string) (*entity.ScrapeJob, error)
}

type jobTracker struct {
	jobs  repository.JobRepository
	now   func() time.Time
	newID func() string
}

// NewJobTracker creates a JobTracker. A second terminal transition on the same job
// returns entity.ErrJobTerminal and leaves the stored job untouched.
func NewJobTracker(jobs repository.JobRepository) JobTracker {
	return &jobTracker{jobs: jobs, now: time.Now, newID: uuid.NewString}
}

func (t *jobTracker) Start(ctx context.Context, source entity.Source, params entity.Params, requestedBy string) (*entity.ScrapeJob, error) {
	job := entity.NewScrapeJob(t.newID(), source, params, t.now())
	job.RequestedBy = requestedBy
	if err := t.jobs.Create(ctx, job); err != nil {
		return nil, storageErr("create scrape job", err)
	}
	return job, nil
}

func (t *jobTracker) Complete(ctx context.Context, jobID string, results []entity.Item) error {
	return t.finish(ctx, jobID, func(job *entity.ScrapeJob, now time.Time) error {
		return job.Complete(results, now)
	})
}

func (t *jobTracker) Fail(ctx context.Context, jobID string, message string) error {
	return t.finish(ctx, jobID, func(job *entity.ScrapeJob, now time.Time) error {
		return job.Fail(message, now)
	})
}

func (t *jobTracker) finish(ctx context.Context, jobID string, transition func(*entity.ScrapeJob, time.Time) error) error {
	job, err := t.jobs.FindByID(ctx, jobID)
	if err != nil {
		return storageErr("load scrape job", err)
	}
	if err := transition(job, t.now()); err != nil {
		return err
	}
	return storageErr("finish scrape job", t.jobs.Finish(ctx, job))
}

func (t *jobTracker) Get(ctx context.Context, jobID, userID string) (*entity.ScrapeJob, error) {
	if userID == "" {
		return nil, entity.ErrUnauthorized
	}
	job, err := t.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, storageErr("load scrape job", err)
	}
	if job.RequestedBy != userID {
		return nil, entity.ErrJobNotFound
	}
	return job, nil
}
