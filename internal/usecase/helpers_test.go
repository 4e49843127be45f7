package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/bizscrape-service/internal/adapter/memory"
	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/repository"
	"github.com/user/bizscrape-service/pkg/metrics"
	"go.uber.org/zap/zaptest"
)

type stubAdapter struct {
	mu          sync.Mutex
	source      entity.Source
	items       []entity.Item
	extra       map[string]any
	err         error
	validateErr error
	calls       []entity.Params
}

func (s *stubAdapter) Source() entity.Source { return s.source }

func (s *stubAdapter) Validate(params entity.Params) error { return s.validateErr }

func (s *stubAdapter) Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, params)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &entity.FetchResult{Items: s.items, Extra: s.extra}, nil
}

func (s *stubAdapter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func itemsN(n int) []entity.Item {
	items := make([]entity.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, entity.Item{"name": fmt.Sprintf("business-%d", i)})
	}
	return items
}

type failingRecords struct{}

func (failingRecords) SaveAll(ctx context.Context, records []*entity.ScrapedRecord) error {
	return errors.New("connection refused")
}

func (failingRecords) CountBySource(ctx context.Context, source entity.Source) (int64, error) {
	return 0, nil
}

type failingLoans struct{}

func (failingLoans) SaveAll(ctx context.Context, loans []*entity.PPPLoan) error {
	return errors.New("ppp_loans: connection reset")
}

func (failingLoans) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.PPPLoan, error) {
	return nil, nil
}

func (failingLoans) Count(ctx context.Context, companyID string) (int64, error) {
	return 0, nil
}

// failingHistory rejects every append.
type failingHistory struct {
	*memory.HistoryRepoImpl
}

func (failingHistory) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	return errors.New("scrape_history: disk full")
}

// fixture wires every use case on memory repositories.
type fixture struct {
	jobs       *memory.JobRepoImpl
	records    *memory.ScrapedRecordRepoImpl
	history    *memory.HistoryRepoImpl
	cache      *memory.StatsCacheImpl
	loans      *memory.PPPLoanRepoImpl
	industries *memory.IndustryRepoImpl

	tracker      *jobTracker
	store        ResultStore
	aggregator   HistoryAggregator
	orchestrator Orchestrator
	metrics      *metrics.Metrics
	jobIDs       []string
}

func newFixture(t *testing.T, adapters ...repository.Adapter) *fixture {
	return newFixtureWithRecords(t, nil, adapters...)
}

func newFixtureWithRecords(t *testing.T, records repository.ScrapedRecordRepository, adapters ...repository.Adapter) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	f := &fixture{
		jobs:       memory.NewJobRepo(),
		records:    memory.NewScrapedRecordRepo(),
		history:    memory.NewHistoryRepo(),
		cache:      memory.NewStatsCache(),
		loans:      memory.NewPPPLoanRepo(),
		industries: memory.NewIndustryRepo(),
		metrics:    metrics.New(prometheus.NewRegistry()),
	}
	if records == nil {
		records = f.records
	}

	f.tracker = NewJobTracker(f.jobs).(*jobTracker)
	next := 0
	f.tracker.newID = func() string {
		next++
		id := fmt.Sprintf("job-%d", next)
		f.jobIDs = append(f.jobIDs, id)
		return id
	}
	f.store = NewResultStore(records, f.loans)
	f.aggregator = NewHistoryAggregator(f.history, f.cache, log)
	f.orchestrator = NewOrchestrator(adapters, f.tracker, f.store, f.aggregator, f.industries, f.metrics, log)
	return f
}

func (f *fixture) lastJob(t *testing.T) *entity.ScrapeJob {
	t.Helper()
	if len(f.jobIDs) == 0 {
		t.Fatal("no job was created")
	}
	job, err := f.jobs.FindByID(context.Background(), f.jobIDs[len(f.jobIDs)-1])
	if err != nil {
		t.Fatalf("load job: %v", err)
	}
	return job
}
