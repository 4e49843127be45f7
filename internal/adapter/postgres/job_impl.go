package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/bizscrape-service/internal/entity"
)

// JobRepoImpl stores scrape jobs in `scrape_jobs`.
type JobRepoImpl struct {
	db *pgxpool.Pool
}

func NewJobRepo(db *pgxpool.Pool) *JobRepoImpl {
	return &JobRepoImpl{db: db}
}

func (r *JobRepoImpl) Create(ctx context.Context, job *entity.ScrapeJob) error {
	paramsJSON, err := json.Marshal(job.Parameters)
	if err != nil {
		return err
	}
	resultsJSON, err := json.Marshal(job.Results)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO scrape_jobs (id, source, status, parameters, started_at, completed_at, results, error, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.db.Exec(ctx, query,
		job.ID,
		job.Source,
		job.Status,
		paramsJSON,
		job.StartedAt,
		job.CompletedAt,
		resultsJSON,
		job.Error,
		job.RequestedBy,
	)
	return err
}

// Finish updates the job only while the stored row is still RUNNING.
func (r *JobRepoImpl) Finish(ctx context.Context, job *entity.ScrapeJob) error {
	resultsJSON, err := json.Marshal(job.Results)
	if err != nil {
		return err
	}

	query := `
		UPDATE scrape_jobs
		SET status = $2, completed_at = $3, results = $4, error = $5
		WHERE id = $1 AND status = 'RUNNING';
	`
	tag, err := r.db.Exec(ctx, query, job.ID, job.Status, job.CompletedAt, resultsJSON, job.Error)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM scrape_jobs WHERE id = $1);`, job.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return entity.ErrJobNotFound
	}
	return entity.ErrJobTerminal
}

func (r *JobRepoImpl) FindByID(ctx context.Context, id string) (*entity.ScrapeJob, error) {
	query := `
		SELECT id, source, status, parameters, started_at, completed_at, results, error, requested_by
		FROM scrape_jobs
		WHERE id = $1;
	`
	var job entity.ScrapeJob
	var paramsJSON, resultsJSON []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.Source,
		&job.Status,
		&paramsJSON,
		&job.StartedAt,
		&job.CompletedAt,
		&resultsJSON,
		&job.Error,
		&job.RequestedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(paramsJSON, &job.Parameters); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resultsJSON, &job.Results); err != nil {
		return nil, err
	}
	if job.Results == nil {
		job.Results = []entity.Item{}
	}
	return &job, nil
}

func (r *JobRepoImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM scrape_jobs;`).Scan(&n)
	return n, err
}
