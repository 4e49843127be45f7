package memory

import (
	"context"
	"sync"

	"github.com/user/bizscrape-service/internal/entity"
)

type HistoryRepoImpl struct {
	mu      sync.RWMutex
	entries []entity.HistoryEntry
}

func NewHistoryRepo() *HistoryRepoImpl {
	return &HistoryRepoImpl{}
}

func (r *HistoryRepoImpl) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *HistoryRepoImpl) CountByUser(ctx context.Context, userID string, status *entity.HistoryStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, e := range r.entries {
		if e.UserID != userID {
			continue
		}
		if status != nil && e.Status != *status {
			continue
		}
		n++
	}
	return n, nil
}

// All returns a snapshot of every entry in append order.
func (r *HistoryRepoImpl) All() []entity.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.HistoryEntry(nil), r.entries...)
}

// StatsCacheImpl is a map-backed stats cache without expiry.
type StatsCacheImpl struct {
	mu          sync.Mutex
	stats       map[string]entity.ScrapeStats
	generations map[string]int64
}

func NewStatsCache() *StatsCacheImpl {
	return &StatsCacheImpl{
		stats:       make(map[string]entity.ScrapeStats),
		generations: make(map[string]int64),
	}
}

func (c *StatsCacheImpl) Get(ctx context.Context, userID string) (entity.ScrapeStats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stats[userID]
	return s, ok, nil
}

func (c *StatsCacheImpl) Generation(ctx context.Context, userID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userID], nil
}

func (c *StatsCacheImpl) Set(ctx context.Context, userID string, stats entity.ScrapeStats, gen int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[userID] != gen {
		return false, nil
	}
	c.stats[userID] = stats
	return true, nil
}

func (c *StatsCacheImpl) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	delete(c.stats, userID)
	return nil
}
