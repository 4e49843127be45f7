package repository

import (
	"context"

	"github.com/user/bizscrape-service/internal/entity"
)

// ScrapedRecordRepository stores normalized provider results.
type ScrapedRecordRepository interface {
	// SaveAll inserts every record. No deduplication is performed.
	SaveAll(ctx context.Context, records []*entity.ScrapedRecord) error
	// CountBySource returns how many records exist for source.
	CountBySource(ctx context.Context, source entity.Source) (int64, error)
}
