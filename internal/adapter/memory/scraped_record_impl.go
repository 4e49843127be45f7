package memory

import (
	"context"
	"sync"

	"github.com/user/bizscrape-service/internal/entity"
)

type ScrapedRecordRepoImpl struct {
	mu      sync.RWMutex
	records []entity.ScrapedRecord
}

func NewScrapedRecordRepo() *ScrapedRecordRepoImpl {
	return &ScrapedRecordRepoImpl{}
}

func (r *ScrapedRecordRepoImpl) SaveAll(ctx context.Context, records []*entity.ScrapedRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.records = append(r.records, *rec)
	}
	return nil
}

func (r *ScrapedRecordRepoImpl) CountBySource(ctx context.Context, source entity.Source) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, rec := range r.records {
		if rec.Source == source {
			n++
		}
	}
	return n, nil
}

// All returns a snapshot of every stored record in insertion order.
func (r *ScrapedRecordRepoImpl) All() []entity.ScrapedRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.ScrapedRecord(nil), r.records...)
}
