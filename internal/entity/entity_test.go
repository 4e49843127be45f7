package entity

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want Source
	}{
		{"yelp", SourceYelp},
		{"YELP", SourceYelp},
		{"google", SourceGoogleMaps},
		{"usa_spending", SourceUSASpending},
		{"usaspending", SourceUSASpending},
		{"PPP_LOAN", SourcePPPLoan},
	}
	for _, tt := range tests {
		got, err := ParseSource(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSource("myspace")
	require.ErrorIs(t, err, ErrUnknownSource)
}

func TestScrapeJobTransitions(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	job := NewScrapeJob("job-1", SourceYelp, Params{"term": "pizza"}, now)
	require.Equal(t, JobStatusRunning, job.Status)
	require.Nil(t, job.CompletedAt)
	require.Nil(t, job.Error)

	require.NoError(t, job.Complete([]Item{{"name": "a"}}, now.Add(time.Second)))
	require.Equal(t, JobStatusCompleted, job.Status)
	require.NotNil(t, job.CompletedAt)
	require.Nil(t, job.Error)
	require.Len(t, job.Results, 1)

	require.ErrorIs(t, job.Fail("late", now), ErrJobTerminal)
	require.ErrorIs(t, job.Complete(nil, now), ErrJobTerminal)
	assert.Equal(t, JobStatusCompleted, job.Status)

	failed := NewScrapeJob("job-2", SourceBBB, nil, now)
	require.NoError(t, failed.Fail("boom", now))
	require.Equal(t, JobStatusFailed, failed.Status)
	require.NotNil(t, failed.CompletedAt)
	require.Equal(t, "boom", *failed.Error)
	require.Empty(t, failed.Results)
}

func TestScrapeRequestIsImmutable(t *testing.T) {
	params := Params{"term": "pizza"}
	req := NewScrapeRequest(SourceYelp, params, "user-1")
	params["term"] = "tacos"

	got := req.Parameters()
	got["term"] = "sushi"

	assert.Equal(t, "pizza", req.Parameters().String("term"))
}

func TestParamsAccessors(t *testing.T) {
	p := Params{"limit": float64(20), "page": "3", "term": "  pizza ", "zip": 94107}
	assert.Equal(t, 20, p.Int("limit", 50))
	assert.Equal(t, 3, p.Int("page", 1))
	assert.Equal(t, 7, p.Int("missing", 7))
	assert.Equal(t, "pizza", p.String("term"))
	assert.Equal(t, "94107", p.String("zip"))
}

func TestPPPLoanItemRoundTrip(t *testing.T) {
	loan := PPPLoan{
		BorrowerName: "Acme Bakery",
		Amount:       15000.5,
		ApprovedAt:   time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		JobsRetained: 12,
		City:         "Oakland",
		State:        "CA",
		Zip:          "94607",
		Lender:       "First Bank",
	}
	back := PPPLoanFromItem(loan.Item())
	assert.Equal(t, loan.BorrowerName, back.BorrowerName)
	assert.Equal(t, loan.Amount, back.Amount)
	assert.True(t, loan.ApprovedAt.Equal(back.ApprovedAt))
	assert.Equal(t, 12, back.JobsRetained)
	assert.Equal(t, "First Bank", back.Lender)
}

func TestPPPLoanWithoutApprovalDate(t *testing.T) {
	loan := PPPLoan{BorrowerName: "Acme Bakery", Amount: 900}
	item := loan.Item()
	assert.NotContains(t, item, "date")
	assert.True(t, PPPLoanFromItem(item).ApprovedAt.IsZero())

	body, err := json.Marshal(loan)
	require.NoError(t, err)
	assert.NotContains(t, string(body), `"date"`)
}

func TestSummarizeLoans(t *testing.T) {
	s := SummarizeLoans([]PPPLoan{
		{Amount: 100, JobsRetained: 2, State: "CA"},
		{Amount: 300, JobsRetained: 4, State: "NV"},
		{Amount: 200, JobsRetained: 0, State: "CA"},
	})
	assert.Equal(t, 3, s.TotalLoans)
	assert.Equal(t, 600.0, s.TotalAmount)
	assert.Equal(t, 6, s.TotalJobs)
	assert.Equal(t, 200.0, s.AverageLoanAmount)
	assert.Equal(t, []StateLoanCount{{"CA", 2}, {"NV", 1}}, s.ByState)

	empty := SummarizeLoans(nil)
	assert.Zero(t, empty.AverageLoanAmount)
	assert.NotNil(t, empty.ByState)
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{Provider: "Yelp", Type: ProviderErrorStatus, StatusCode: 401, Body: "bad token"}
	assert.Equal(t, "Yelp API Error: 401 - bad token", err.Error())

	cause := errors.New("dial tcp: refused")
	err = &ProviderError{Provider: "BBB", Type: ProviderErrorTransport, Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "transport")
}

func TestPersistenceDoesNotDoubleWrap(t *testing.T) {
	base := errors.New("conn reset")
	once := Persistence("insert job", base)
	twice := Persistence("update job", once)

	var pe *PersistenceError
	require.ErrorAs(t, twice, &pe)
	assert.Equal(t, "insert job", pe.Op)
	assert.ErrorIs(t, twice, base)
	assert.Nil(t, Persistence("noop", nil))
}
