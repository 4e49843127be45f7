// Package memory holds in-process implementations of every repository. They back
// STORAGE_DRIVER=memory runs and the use case tests.
package memory

import (
	"context"
	"sync"

	"github.com/user/bizscrape-service/internal/entity"
)

// JobRepoImpl keeps jobs in a map guarded by a mutex.
type JobRepoImpl struct {
	mu   sync.RWMutex
	jobs map[string]entity.ScrapeJob
}

func NewJobRepo() *JobRepoImpl {
	return &JobRepoImpl{jobs: make(map[string]entity.ScrapeJob)}
}

func (r *JobRepoImpl) Create(ctx context.Context, job *entity.ScrapeJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = copyJob(job)
	return nil
}

// Finish only overwrites a job that is still RUNNING.
func (r *JobRepoImpl) Finish(ctx context.Context, job *entity.ScrapeJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[job.ID]
	if !ok {
		return entity.ErrJobNotFound
	}
	if stored.Terminal() {
		return entity.ErrJobTerminal
	}
	r.jobs[job.ID] = copyJob(job)
	return nil
}

func (r *JobRepoImpl) FindByID(ctx context.Context, id string) (*entity.ScrapeJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.jobs[id]
	if !ok {
		return nil, entity.ErrJobNotFound
	}
	job := copyJob(&stored)
	return &job, nil
}

func (r *JobRepoImpl) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.jobs)), nil
}

func copyJob(job *entity.ScrapeJob) entity.ScrapeJob {
	c := *job
	c.Parameters = job.Parameters.Clone()
	c.Results = append([]entity.Item(nil), job.Results...)
	return c
}
