package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/bizscrape-service/internal/entity"
)

func TestJobRepoFinishOnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepo()
	now := time.Now()

	job := entity.NewScrapeJob("j1", entity.SourceYelp, entity.Params{"term": "pizza"}, now)
	require.NoError(t, repo.Create(ctx, job))

	require.NoError(t, job.Complete([]entity.Item{{"name": "A"}}, now))
	require.NoError(t, repo.Finish(ctx, job))
	require.ErrorIs(t, repo.Finish(ctx, job), entity.ErrJobTerminal)

	stored, err := repo.FindByID(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCompleted, stored.Status)
	assert.Len(t, stored.Results, 1)

	_, err = repo.FindByID(ctx, "missing")
	require.ErrorIs(t, err, entity.ErrJobNotFound)

	missing := entity.NewScrapeJob("j2", entity.SourceYelp, nil, now)
	require.ErrorIs(t, repo.Finish(ctx, missing), entity.ErrJobNotFound)
}

func TestHistoryCountByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepo()
	for _, e := range []entity.HistoryEntry{
		{UserID: "u1", Status: entity.HistoryStatusSuccess},
		{UserID: "u1", Status: entity.HistoryStatusFailed},
		{UserID: "u1", Status: entity.HistoryStatusSuccess},
		{UserID: "u2", Status: entity.HistoryStatusSuccess},
	} {
		e := e
		require.NoError(t, repo.Append(ctx, &e))
	}

	total, err := repo.CountByUser(ctx, "u1", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	success := entity.HistoryStatusSuccess
	n, err := repo.CountByUser(ctx, "u1", &success)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestPPPLoanListPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewPPPLoanRepo()
	company := "c1"
	base := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	var loans []*entity.PPPLoan
	for i := 0; i < 5; i++ {
		loans = append(loans, &entity.PPPLoan{ID: string(rune('a' + i)), CompanyID: &company, ApprovedAt: base.AddDate(0, 0, i)})
	}
	loans = append(loans, &entity.PPPLoan{ID: "other"})
	require.NoError(t, repo.SaveAll(ctx, loans))

	n, err := repo.Count(ctx, "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	page, err := repo.List(ctx, "c1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "e", page[0].ID)
	assert.Equal(t, "d", page[1].ID)

	page, err = repo.List(ctx, "c1", 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].ID)

	all, err := repo.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestIndustryListByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewIndustryRepo()
	now := time.Now()
	require.NoError(t, repo.Create(ctx, &entity.Industry{ID: "i1", UserID: "u1", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &entity.Industry{ID: "i2", UserID: "u1", CreatedAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.Industry{ID: "i3", UserID: "u2", CreatedAt: now}))

	list, err := repo.ListByUser(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "i2", list[0].ID)

	list, err = repo.ListByUser(ctx, "u1", "i1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = repo.FindByID(ctx, "nope")
	require.ErrorIs(t, err, entity.ErrIndustryNotFound)
}

func TestStatsCache(t *testing.T) {
	ctx := context.Background()
	c := NewStatsCache()
	_, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	gen, err := c.Generation(ctx, "u1")
	require.NoError(t, err)
	stored, err := c.Set(ctx, "u1", entity.ScrapeStats{Total: 2}, gen)
	require.NoError(t, err)
	assert.True(t, stored)
	s, ok, _ := c.Get(ctx, "u1")
	assert.True(t, ok)
	assert.EqualValues(t, 2, s.Total)

	require.NoError(t, c.Invalidate(ctx, "u1"))
	_, ok, _ = c.Get(ctx, "u1")
	assert.False(t, ok)
}

func TestStatsCacheRefusesStaleGeneration(t *testing.T) {
	ctx := context.Background()
	c := NewStatsCache()

	gen, err := c.Generation(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "u1"))

	stored, err := c.Set(ctx, "u1", entity.ScrapeStats{Total: 0}, gen)
	require.NoError(t, err)
	assert.False(t, stored)
	_, ok, _ := c.Get(ctx, "u1")
	assert.False(t, ok)

	// Other users keep their own generation.
	stored, err = c.Set(ctx, "u2", entity.ScrapeStats{Total: 1}, 0)
	require.NoError(t, err)
	assert.True(t, stored)
}
