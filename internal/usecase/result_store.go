package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/repository"
)

// ResultStore persists every normalized item as an independent record. Re-running a
// search stores duplicates; providers share no natural key.
type ResultStore interface {
	// SaveAll stores items with processed=false. PPP_LOAN items are also stored as
	// normalized loan records, in a second write after the records commit; a loan
	// failure leaves the records in place.
	SaveAll(ctx context.Context, source entity.Source, items []entity.Item) error
	// SaveProcessed stores items with processed=true, as the batch path does.
	SaveProcessed(ctx context.Context, source entity.Source, items []entity.Item) error
}

type resultStore struct {
	records repository.ScrapedRecordRepository
	loans   repository.PPPLoanRepository
	now     func() time.Time
	newID   func() string
}

func NewResultStore(records repository.ScrapedRecordRepository, loans repository.PPPLoanRepository) ResultStore {
	return &resultStore{records: records, loans: loans, now: time.Now, newID: uuid.NewString}
}

func (s *resultStore) SaveAll(ctx context.Context, source entity.Source, items []entity.Item) error {
	if err := s.save(ctx, source, items, false); err != nil {
		return err
	}
	if source != entity.SourcePPPLoan || len(items) == 0 {
		return nil
	}

	now := s.now()
	loans := make([]*entity.PPPLoan, 0, len(items))
	for _, item := range items {
		loan := entity.PPPLoanFromItem(item)
		loan.ID = s.newID()
		loan.CreatedAt = now
		loans = append(loans, &loan)
	}
	return storageErr("save ppp loans", s.loans.SaveAll(ctx, loans))
}

func (s *resultStore) SaveProcessed(ctx context.Context, source entity.Source, items []entity.Item) error {
	return s.save(ctx, source, items, true)
}

func (s *resultStore) save(ctx context.Context, source entity.Source, items []entity.Item, processed bool) error {
	if len(items) == 0 {
		return nil
	}
	now := s.now()
	records := make([]*entity.ScrapedRecord, 0, len(items))
	for _, item := range items {
		records = append(records, &entity.ScrapedRecord{
			ID:        s.newID(),
			Source:    source,
			RawData:   item,
			Processed: processed,
			CreatedAt: now,
		})
	}
	return storageErr("save scraped records", s.records.SaveAll(ctx, records))
}
