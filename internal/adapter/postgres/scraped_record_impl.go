package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/bizscrape-service/internal/entity"
)

// ScrapedRecordRepoImpl stores normalized items in `scraped_records`.
type ScrapedRecordRepoImpl struct {
	db *pgxpool.Pool
}

func NewScrapedRecordRepo(db *pgxpool.Pool) *ScrapedRecordRepoImpl {
	return &ScrapedRecordRepoImpl{db: db}
}

// SaveAll inserts the records of one call in a single transaction.
func (r *ScrapedRecordRepoImpl) SaveAll(ctx context.Context, records []*entity.ScrapedRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		rawJSON, err := json.Marshal(rec.RawData)
		if err != nil {
			return err
		}
		batch.Queue(`INSERT INTO scraped_records (id, source, raw_data, processed, company_id, created_at)
		             VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.ID, rec.Source, rawJSON, rec.Processed, rec.CompanyID, rec.CreatedAt)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ScrapedRecordRepoImpl) CountBySource(ctx context.Context, source entity.Source) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM scraped_records WHERE source = $1;`, source).Scan(&n)
	return n, err
}
