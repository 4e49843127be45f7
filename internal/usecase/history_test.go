package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/bizscrape-service/internal/adapter/memory"
	"github.com/user/bizscrape-service/internal/entity"
	"go.uber.org/zap/zaptest"
)

// pausingHistory holds the first IN_PROGRESS count until resume is closed.
type pausingHistory struct {
	*memory.HistoryRepoImpl
	paused chan struct{}
	resume chan struct{}
	once   sync.Once
}

func (p *pausingHistory) CountByUser(ctx context.Context, userID string, status *entity.HistoryStatus) (int64, error) {
	n, err := p.HistoryRepoImpl.CountByUser(ctx, userID, status)
	if status != nil && *status == entity.HistoryStatusInProgress {
		p.once.Do(func() {
			close(p.paused)
			<-p.resume
		})
	}
	return n, err
}

func TestStatsForIgnoresFillRacingRecord(t *testing.T) {
	history := &pausingHistory{
		HistoryRepoImpl: memory.NewHistoryRepo(),
		paused:          make(chan struct{}),
		resume:          make(chan struct{}),
	}
	cache := memory.NewStatsCache()
	agg := NewHistoryAggregator(history, cache, zaptest.NewLogger(t))
	ctx := context.Background()

	type result struct {
		stats entity.ScrapeStats
		err   error
	}
	done := make(chan result, 1)
	go func() {
		s, err := agg.StatsFor(ctx, "user-1")
		done <- result{s, err}
	}()

	<-history.paused
	require.NoError(t, agg.Record(ctx, entity.HistoryEntry{
		Source: entity.SourceYelp, Status: entity.HistoryStatusSuccess, ResultsCount: 2, UserID: "user-1",
	}))
	close(history.resume)

	first := <-done
	require.NoError(t, first.err)
	assert.Zero(t, first.stats.Total)

	_, cached, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, cached)

	stats, err := agg.StatsFor(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ScrapeStats{Total: 1, Successful: 1}, stats)
	assert.Equal(t, stats.Total, stats.Successful+stats.Failed)
}

func TestStatsForFillsCacheWhenQuiet(t *testing.T) {
	cache := memory.NewStatsCache()
	agg := NewHistoryAggregator(memory.NewHistoryRepo(), cache, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, agg.Record(ctx, entity.HistoryEntry{Source: entity.SourceBBB, Status: entity.HistoryStatusFailed, UserID: "user-1"}))
	_, err := agg.StatsFor(ctx, "user-1")
	require.NoError(t, err)

	cached, ok, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.ScrapeStats{Total: 1, Failed: 1}, cached)
}
