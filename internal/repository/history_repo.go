package repository

import (
	"context"

	"github.com/user/bizscrape-service/internal/entity"
)

// HistoryRepository is the append-only store of invocation outcomes.
type HistoryRepository interface {
	Append(ctx context.Context, entry *entity.HistoryEntry) error
	// CountByUser counts the user's entries; a nil status counts all of them.
	CountByUser(ctx context.Context, userID string, status *entity.HistoryStatus) (int64, error)
}

// StatsCache caches per-user stats between history appends. Every Invalidate bumps
// the user's generation so a fill computed before the bump can be refused.
type StatsCache interface {
	// Get reports ok=false on a cache miss.
	Get(ctx context.Context, userID string) (stats entity.ScrapeStats, ok bool, err error)
	// Generation returns the user's current generation, 0 before the first Invalidate.
	Generation(ctx context.Context, userID string) (int64, error)
	// Set stores stats only while the generation still equals gen and reports
	// whether it did.
	Set(ctx context.Context, userID string, stats entity.ScrapeStats, gen int64) (bool, error)
	Invalidate(ctx context.Context, userID string) error
}
