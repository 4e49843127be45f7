package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/repository"
	"go.uber.org/zap"
)

// HistoryAggregator appends invocation outcomes and answers per-user counts.
type HistoryAggregator interface {
	Record(ctx context.Context, entry entity.HistoryEntry) error
	StatsFor(ctx context.Context, userID string) (entity.ScrapeStats, error)
}

type historyAggregator struct {
	history repository.HistoryRepository
	cache   repository.StatsCache
	log     *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewHistoryAggregator creates a HistoryAggregator. cache may be nil.
func NewHistoryAggregator(history repository.HistoryRepository, cache repository.StatsCache, log *zap.Logger) HistoryAggregator {
	return &historyAggregator{history: history, cache: cache, log: log, now: time.Now, newID: uuid.NewString}
}

func (h *historyAggregator) Record(ctx context.Context, entry entity.HistoryEntry) error {
	entry.ID = h.newID()
	entry.CreatedAt = h.now()
	if err := h.history.Append(ctx, &entry); err != nil {
		return storageErr("append scrape history", err)
	}
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, entry.UserID); err != nil {
			h.log.Warn("Failed to invalidate stats cache", zap.String("user_id", entry.UserID), zap.Error(err))
		}
	}
	return nil
}

// StatsFor counts the user's history entries. IN_PROGRESS is counted like any other
// status even though no code path writes it.
func (h *historyAggregator) StatsFor(ctx context.Context, userID string) (entity.ScrapeStats, error) {
	if userID == "" {
		return entity.ScrapeStats{}, entity.ErrUnauthorized
	}
	// The generation is read before counting; a Record that lands mid-count bumps
	// it and the fill below is refused.
	gen, cacheable := int64(0), h.cache != nil
	if cacheable {
		stats, ok, err := h.cache.Get(ctx, userID)
		if err != nil {
			h.log.Warn("Failed to read stats cache", zap.String("user_id", userID), zap.Error(err))
		} else if ok {
			return stats, nil
		}
		if gen, err = h.cache.Generation(ctx, userID); err != nil {
			h.log.Warn("Failed to read stats cache generation", zap.String("user_id", userID), zap.Error(err))
			cacheable = false
		}
	}

	var stats entity.ScrapeStats
	counts := []struct {
		dst    *int64
		status *entity.HistoryStatus
	}{
		{&stats.Total, nil},
		{&stats.Successful, statusPtr(entity.HistoryStatusSuccess)},
		{&stats.Failed, statusPtr(entity.HistoryStatusFailed)},
		{&stats.InProgress, statusPtr(entity.HistoryStatusInProgress)},
	}
	for _, c := range counts {
		n, err := h.history.CountByUser(ctx, userID, c.status)
		if err != nil {
			return entity.ScrapeStats{}, storageErr("count scrape history", err)
		}
		*c.dst = n
	}

	if cacheable {
		stored, err := h.cache.Set(ctx, userID, stats, gen)
		if err != nil {
			h.log.Warn("Failed to write stats cache", zap.String("user_id", userID), zap.Error(err))
		} else if !stored {
			h.log.Debug("Skipped stale stats cache fill", zap.String("user_id", userID))
		}
	}
	return stats, nil
}

func statusPtr(s entity.HistoryStatus) *entity.HistoryStatus { return &s }
