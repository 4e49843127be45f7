package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/repository"
	"github.com/user/bizscrape-service/pkg/metrics"
	"go.uber.org/zap"
)

// RunResult is the outcome of a successful single-source run.
type RunResult struct {
	JobID   string
	Results []entity.Item
	// Extra holds source-specific response fields such as pagination or summary.
	Extra map[string]any
}

// Orchestrator sequences adapter, job tracker, result store and history for a
// request.
type Orchestrator interface {
	// Run executes one source. Validation, config and auth failures happen before
	// any side effect. Once a job exists its terminal state and one history entry
	// are always written, whether the fetch succeeds or not.
	Run(ctx context.Context, req entity.ScrapeRequest) (*RunResult, error)
	// RunBatch runs sources sequentially for an industry under one outer job. The
	// first failing step aborts the remaining sources and fails the outer job.
	RunBatch(ctx context.Context, industryID string, sources []entity.Source, userID string) (string, error)
}

type orchestrator struct {
	adapters   map[entity.Source]repository.Adapter
	tracker    JobTracker
	results    ResultStore
	history    HistoryAggregator
	industries repository.IndustryRepository
	metrics    *metrics.Metrics
	log        *zap.Logger
	now        func() time.Time
}

func NewOrchestrator(
	adapters []repository.Adapter,
	tracker JobTracker,
	results ResultStore,
	history HistoryAggregator,
	industries repository.IndustryRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) Orchestrator {
	registry := make(map[entity.Source]repository.Adapter, len(adapters))
	for _, a := range adapters {
		registry[a.Source()] = a
	}
	return &orchestrator{
		adapters:   registry,
		tracker:    tracker,
		results:    results,
		history:    history,
		industries: industries,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

func (o *orchestrator) adapter(source entity.Source) (repository.Adapter, error) {
	a, ok := o.adapters[source]
	if !ok {
		return nil, &entity.ValidationError{Field: "source", Message: fmt.Sprintf("Unsupported source: %s", source)}
	}
	return a, nil
}

func (o *orchestrator) Run(ctx context.Context, req entity.ScrapeRequest) (*RunResult, error) {
	if req.RequestedBy() == "" {
		return nil, entity.ErrUnauthorized
	}
	source := req.Source()
	adapter, err := o.adapter(source)
	if err != nil {
		return nil, err
	}
	params := req.Parameters()
	if err := adapter.Validate(params); err != nil {
		return nil, err
	}

	job, err := o.tracker.Start(ctx, source, params, req.RequestedBy())
	if err != nil {
		return nil, err
	}
	o.metrics.JobStarted()
	defer o.metrics.JobFinished()

	log := o.log.With(zap.String("job_id", job.ID), zap.String("source", string(source)))
	log.Info("Scrape started", zap.String("user_id", req.RequestedBy()))

	// Bookkeeping after the fetch must survive a cancelled request.
	bctx := context.WithoutCancel(ctx)

	t0 := o.now()
	res, err := adapter.Fetch(ctx, params)
	if err != nil {
		o.recordProviderError(source, err)
		return nil, o.fail(bctx, log, job.ID, source, req.RequestedBy(), o.now().Sub(t0), err)
	}
	if err := o.results.SaveAll(bctx, source, res.Items); err != nil {
		return nil, o.fail(bctx, log, job.ID, source, req.RequestedBy(), o.now().Sub(t0), err)
	}
	if err := o.tracker.Complete(bctx, job.ID, res.Items); err != nil {
		return nil, o.fail(bctx, log, job.ID, source, req.RequestedBy(), o.now().Sub(t0), err)
	}

	duration := o.now().Sub(t0)
	if err := o.history.Record(bctx, entity.HistoryEntry{
		Source:       source,
		Status:       entity.HistoryStatusSuccess,
		ResultsCount: len(res.Items),
		DurationMS:   duration.Milliseconds(),
		UserID:       req.RequestedBy(),
	}); err != nil {
		// The job is already COMPLETED and cannot fail any more, so this outcome
		// has no history entry.
		log.Error("Failed to record scrape history", zap.Error(err))
		return nil, err
	}

	o.metrics.ObserveScrape(string(source), "success", duration.Seconds(), len(res.Items))
	log.Info("Scrape completed", zap.Int("results", len(res.Items)), zap.Int64("duration_ms", duration.Milliseconds()))

	extra := res.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	return &RunResult{JobID: job.ID, Results: res.Items, Extra: extra}, nil
}

// fail writes the FAILED job and history entry for cause and returns cause joined
// with any bookkeeping error.
func (o *orchestrator) fail(ctx context.Context, log *zap.Logger, jobID string, source entity.Source, userID string, duration time.Duration, cause error) error {
	msg := cause.Error()
	log.Error("Scrape failed", zap.Error(cause), zap.Int64("duration_ms", duration.Milliseconds()))
	o.metrics.ObserveScrape(string(source), "failed", duration.Seconds(), 0)

	errs := []error{cause}
	if err := o.tracker.Fail(ctx, jobID, msg); err != nil {
		log.Error("Failed to mark scrape job failed", zap.Error(err))
		errs = append(errs, err)
	}
	if err := o.history.Record(ctx, entity.HistoryEntry{
		Source:       source,
		Status:       entity.HistoryStatusFailed,
		ResultsCount: 0,
		DurationMS:   duration.Milliseconds(),
		Error:        &msg,
		UserID:       userID,
	}); err != nil {
		log.Error("Failed to record scrape history", zap.Error(err))
		errs = append(errs, err)
	}
	if len(errs) == 1 {
		return cause
	}
	return errors.Join(errs...)
}

func (o *orchestrator) recordProviderError(source entity.Source, err error) {
	errType := "unknown"
	var pe *entity.ProviderError
	if errors.As(err, &pe) {
		errType = string(pe.Type)
	}
	o.metrics.ProviderError(string(source), errType)
}

func (o *orchestrator) RunBatch(ctx context.Context, industryID string, sources []entity.Source, userID string) (string, error) {
	if userID == "" {
		return "", entity.ErrUnauthorized
	}
	if len(sources) == 0 {
		return "", &entity.ValidationError{Field: "sources", Message: "At least one source is required"}
	}

	job, err := o.tracker.Start(ctx, sources[0], entity.Params{"industryId": industryID}, userID)
	if err != nil {
		return "", err
	}
	o.metrics.JobStarted()
	defer o.metrics.JobFinished()

	log := o.log.With(zap.String("job_id", job.ID), zap.String("industry_id", industryID))
	log.Info("Batch scrape started", zap.Int("sources", len(sources)))
	bctx := context.WithoutCancel(ctx)

	if err := o.runSources(ctx, log, industryID, sources, userID); err != nil {
		log.Error("Batch scrape failed", zap.Error(err))
		if ferr := o.tracker.Fail(bctx, job.ID, err.Error()); ferr != nil {
			return job.ID, errors.Join(err, ferr)
		}
		return job.ID, err
	}
	if err := o.tracker.Complete(bctx, job.ID, nil); err != nil {
		return job.ID, err
	}
	log.Info("Batch scrape completed")
	return job.ID, nil
}

func (o *orchestrator) runSources(ctx context.Context, log *zap.Logger, industryID string, sources []entity.Source, userID string) error {
	industry, err := o.industries.FindByID(ctx, industryID)
	if err != nil {
		return storageErr("load industry", err)
	}

	for _, source := range sources {
		t0 := o.now()
		var written int
		switch source {
		case entity.SourceLinkedIn:
			written, err = o.batchLinkedIn(ctx, industry)
		case entity.SourceUSASpending:
			written, err = o.batchUSASpending(ctx, industry)
		default:
			log.Warn("Unsupported batch source", zap.String("source", string(source)))
		}
		if err != nil {
			return err
		}

		duration := o.now().Sub(t0)
		if err := o.history.Record(ctx, entity.HistoryEntry{
			Source:       source,
			Status:       entity.HistoryStatusSuccess,
			ResultsCount: written,
			DurationMS:   duration.Milliseconds(),
			UserID:       userID,
		}); err != nil {
			return err
		}
		o.metrics.ObserveScrape(string(source), "success", duration.Seconds(), written)
	}
	return nil
}

// batchLinkedIn stores one processed record per major player.
func (o *orchestrator) batchLinkedIn(ctx context.Context, industry *entity.Industry) (int, error) {
	written := 0
	for _, player := range industry.MajorPlayers {
		res, err := o.batchFetch(ctx, entity.SourceLinkedIn, entity.Params{"companyName": player.Name})
		if err != nil {
			return written, err
		}
		if len(res.Items) == 0 {
			continue
		}
		if err := o.results.SaveProcessed(ctx, entity.SourceLinkedIn, res.Items[:1]); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// batchUSASpending stores the whole spending response for the industry name as one
// processed record.
func (o *orchestrator) batchUSASpending(ctx context.Context, industry *entity.Industry) (int, error) {
	res, err := o.batchFetch(ctx, entity.SourceUSASpending, entity.Params{"keyword": industry.Name})
	if err != nil {
		return 0, err
	}
	raw := entity.Item{"keyword": industry.Name, "results": res.Items}
	for k, v := range res.Extra {
		raw[k] = v
	}
	if err := o.results.SaveProcessed(ctx, entity.SourceUSASpending, []entity.Item{raw}); err != nil {
		return 0, err
	}
	return 1, nil
}

func (o *orchestrator) batchFetch(ctx context.Context, source entity.Source, params entity.Params) (*entity.FetchResult, error) {
	adapter, err := o.adapter(source)
	if err != nil {
		return nil, err
	}
	if err := adapter.Validate(params); err != nil {
		return nil, err
	}
	res, err := adapter.Fetch(ctx, params)
	if err != nil {
		o.recordProviderError(source, err)
		return nil, err
	}
	return res, nil
}
