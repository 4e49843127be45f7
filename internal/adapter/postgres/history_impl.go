package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/bizscrape-service/internal/entity"
)

// HistoryRepoImpl appends to `scrape_history`. Rows are never updated.
type HistoryRepoImpl struct {
	db *pgxpool.Pool
}

func NewHistoryRepo(db *pgxpool.Pool) *HistoryRepoImpl {
	return &HistoryRepoImpl{db: db}
}

func (r *HistoryRepoImpl) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	query := `
		INSERT INTO scrape_history (id, source, status, results_count, duration_ms, error, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.Source,
		entry.Status,
		entry.ResultsCount,
		entry.DurationMS,
		entry.Error,
		entry.UserID,
		entry.CreatedAt,
	)
	return err
}

func (r *HistoryRepoImpl) CountByUser(ctx context.Context, userID string, status *entity.HistoryStatus) (int64, error) {
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	query := `
		SELECT COUNT(*) FROM scrape_history
		WHERE user_id = $1 AND ($2::text IS NULL OR status = $2::text);
	`
	var n int64
	err := r.db.QueryRow(ctx, query, userID, statusArg).Scan(&n)
	return n, err
}
