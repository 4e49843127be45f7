package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/bizscrape-service/internal/entity"
)

// testPool connects to TEST_DATABASE_URL and applies the schema. Tests are skipped
// when it is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func TestJobRepoLifecycle(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewJobRepo(pool)

	now := time.Now().UTC().Truncate(time.Millisecond)
	job := entity.NewScrapeJob(uuid.NewString(), entity.SourceYelp, entity.Params{"term": "pizza", "limit": 20}, now)
	job.RequestedBy = "user-1"
	require.NoError(t, repo.Create(ctx, job))

	stored, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", stored.RequestedBy)
	assert.Equal(t, entity.JobStatusRunning, stored.Status)
	assert.Nil(t, stored.CompletedAt)
	assert.Equal(t, "pizza", stored.Parameters.String("term"))
	assert.Empty(t, stored.Results)

	require.NoError(t, job.Complete([]entity.Item{{"name": "A"}}, now.Add(time.Second)))
	require.NoError(t, repo.Finish(ctx, job))
	require.ErrorIs(t, repo.Finish(ctx, job), entity.ErrJobTerminal)

	stored, err = repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	require.Len(t, stored.Results, 1)
	assert.Equal(t, "A", stored.Results[0]["name"])

	_, err = repo.FindByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, entity.ErrJobNotFound)

	missing := entity.NewScrapeJob(uuid.NewString(), entity.SourceYelp, nil, now)
	require.NoError(t, missing.Fail("x", now))
	require.ErrorIs(t, repo.Finish(ctx, missing), entity.ErrJobNotFound)
}

func TestScrapedRecordAndHistory(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	records := NewScrapedRecordRepo(pool)
	history := NewHistoryRepo(pool)

	before, err := records.CountBySource(ctx, entity.SourceAngi)
	require.NoError(t, err)
	require.NoError(t, records.SaveAll(ctx, []*entity.ScrapedRecord{
		{ID: uuid.NewString(), Source: entity.SourceAngi, RawData: entity.Item{"name": "Pipes"}, CreatedAt: time.Now()},
		{ID: uuid.NewString(), Source: entity.SourceAngi, RawData: entity.Item{"name": "Drains"}, CreatedAt: time.Now()},
	}))
	after, err := records.CountBySource(ctx, entity.SourceAngi)
	require.NoError(t, err)
	assert.Equal(t, before+2, after)

	user := uuid.NewString()
	msg := "boom"
	for _, e := range []*entity.HistoryEntry{
		{ID: uuid.NewString(), Source: entity.SourceYelp, Status: entity.HistoryStatusSuccess, ResultsCount: 3, UserID: user, CreatedAt: time.Now()},
		{ID: uuid.NewString(), Source: entity.SourceYelp, Status: entity.HistoryStatusFailed, Error: &msg, UserID: user, CreatedAt: time.Now()},
	} {
		require.NoError(t, history.Append(ctx, e))
	}
	total, err := history.CountByUser(ctx, user, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	failed := entity.HistoryStatusFailed
	n, err := history.CountByUser(ctx, user, &failed)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPPPLoanRepo(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewPPPLoanRepo(pool)

	company := uuid.NewString()
	base := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveAll(ctx, []*entity.PPPLoan{
		{ID: uuid.NewString(), CompanyID: &company, BorrowerName: "Old", Amount: 100, ApprovedAt: base, CreatedAt: time.Now(), RawData: entity.Item{"name": "Old"}},
		{ID: uuid.NewString(), CompanyID: &company, BorrowerName: "New", Amount: 200, ApprovedAt: base.AddDate(0, 1, 0), CreatedAt: time.Now(), RawData: entity.Item{"name": "New"}},
	}))

	n, err := repo.Count(ctx, company)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	loans, err := repo.List(ctx, company, 1, 0)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "New", loans[0].BorrowerName)
	assert.Equal(t, "New", loans[0].RawData["name"])
}

func TestIndustryRepo(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewIndustryRepo(pool)

	user := uuid.NewString()
	ind := &entity.Industry{
		ID:         uuid.NewString(),
		Name:       "HVAC",
		Parameters: entity.IndustryParameters{Size: "large", Geography: "US"},
		MajorPlayers: []entity.Player{
			{ID: uuid.NewString(), Name: "Carrier", Type: entity.PlayerTypeMajor},
			{ID: uuid.NewString(), Name: "Trane", Type: entity.PlayerTypeMajor},
		},
		UserID:    user,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, ind))

	found, err := repo.FindByID(ctx, ind.ID)
	require.NoError(t, err)
	assert.Equal(t, "US", found.Parameters.Geography)
	require.Len(t, found.MajorPlayers, 2)
	assert.Equal(t, "Carrier", found.MajorPlayers[0].Name)

	list, err := repo.ListByUser(ctx, user, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.FindByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, entity.ErrIndustryNotFound)
}
