// Package app assembles storage, providers and use cases from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/user/bizscrape-service/internal/adapter/memory"
	"github.com/user/bizscrape-service/internal/adapter/postgres"
	"github.com/user/bizscrape-service/internal/adapter/provider"
	redis_adapter "github.com/user/bizscrape-service/internal/adapter/redis"
	"github.com/user/bizscrape-service/internal/delivery/http/handler"
	"github.com/user/bizscrape-service/internal/repository"
	"github.com/user/bizscrape-service/internal/usecase"
	"github.com/user/bizscrape-service/pkg/config"
	"github.com/user/bizscrape-service/pkg/metrics"
	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type repositories struct {
	jobs       repository.JobRepository
	records    repository.ScrapedRecordRepository
	history    repository.HistoryRepository
	cache      repository.StatsCache
	loans      repository.PPPLoanRepository
	industries repository.IndustryRepository
}

// App holds the wired use cases. Close releases the storage connections.
type App struct {
	Metrics      *metrics.Metrics
	Orchestrator usecase.Orchestrator
	Tracker      usecase.JobTracker
	History      usecase.HistoryAggregator
	Loans        usecase.LoanQuery
	Research     usecase.IndustryResearch
	Google       *provider.GoogleAdapter
	HealthChecks []handler.HealthCheck

	closers []func()
}

// New connects the configured storage driver and builds every use case on top of it.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, reg prometheus.Registerer) (*App, error) {
	a := &App{Metrics: metrics.New(reg)}

	repos, err := a.connect(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	adapters, google := provider.Adapters(cfg.Providers, provider.NewClient(cfg.Providers.HTTPTimeout))
	a.Google = google
	a.Tracker = usecase.NewJobTracker(repos.jobs)
	a.History = usecase.NewHistoryAggregator(repos.history, repos.cache, log)
	a.Loans = usecase.NewLoanQuery(repos.loans)
	a.Orchestrator = usecase.NewOrchestrator(
		adapters,
		a.Tracker,
		usecase.NewResultStore(repos.records, repos.loans),
		a.History,
		repos.industries,
		a.Metrics,
		log,
	)
	a.Research = usecase.NewIndustryResearch(repos.industries, a.Orchestrator, log)
	return a, nil
}

func (a *App) connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repositories, error) {
	switch cfg.StorageDriver {
	case DriverMemory:
		log.Warn("Using in-memory storage; data is lost on exit")
		return &repositories{
			jobs:       memory.NewJobRepo(),
			records:    memory.NewScrapedRecordRepo(),
			history:    memory.NewHistoryRepo(),
			cache:      memory.NewStatsCache(),
			loans:      memory.NewPPPLoanRepo(),
			industries: memory.NewIndustryRepo(),
		}, nil

	case DriverPostgres:
		db, err := postgres.NewPool(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		log.Info("PostgreSQL connection pool established")

		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}

		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("unable to connect to redis: %w", err)
		}
		log.Info("Redis connection established")

		a.HealthChecks = []handler.HealthCheck{
			{Name: "postgres", Ping: db.Ping},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		}
		return &repositories{
			jobs:       postgres.NewJobRepo(db),
			records:    postgres.NewScrapedRecordRepo(db),
			history:    postgres.NewHistoryRepo(db),
			cache:      redis_adapter.NewStatsCache(rdb, cfg.StatsCacheTTL()),
			loans:      postgres.NewPPPLoanRepo(db),
			industries: postgres.NewIndustryRepo(db),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// Dependencies exposes the use cases in the shape the HTTP handler expects.
func (a *App) Dependencies() handler.Dependencies {
	return handler.Dependencies{
		Orchestrator: a.Orchestrator,
		Tracker:      a.Tracker,
		History:      a.History,
		Loans:        a.Loans,
		Research:     a.Research,
		Prober:       a.Google,
		HealthChecks: a.HealthChecks,
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
