package repository

import (
	"context"

	"github.com/user/bizscrape-service/internal/entity"
)

// JobRepository persists scrape jobs.
type JobRepository interface {
	// Create stores a new job in RUNNING state.
	Create(ctx context.Context, job *entity.ScrapeJob) error
	// Finish writes the terminal state of a job. It must only succeed while the stored
	// job is still RUNNING and returns entity.ErrJobTerminal otherwise.
	Finish(ctx context.Context, job *entity.ScrapeJob) error
	// FindByID returns entity.ErrJobNotFound when no job matches.
	FindByID(ctx context.Context, id string) (*entity.ScrapeJob, error)
	// Count returns the number of stored jobs.
	Count(ctx context.Context) (int64, error)
}
