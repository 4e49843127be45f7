package provider

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/user/bizscrape-service/internal/entity"
)

const (
	usaSpendingProvider = "USASpending"
	spendingPeriodStart = "2020-01-01"
	spendingPeriodEnd   = "2024-01-01"
)

// USASpendingAdapter runs a spending-by-category search over federal awards.
type USASpendingAdapter struct {
	baseURL string
	client  *resty.Client
}

func NewUSASpendingAdapter(baseURL string, client *resty.Client) *USASpendingAdapter {
	return &USASpendingAdapter{baseURL: baseURL, client: client}
}

func (a *USASpendingAdapter) Source() entity.Source { return entity.SourceUSASpending }

func (a *USASpendingAdapter) Validate(params entity.Params) error {
	if params.String("keyword") == "" {
		return entity.Required("keyword", "Keyword")
	}
	return nil
}

func (a *USASpendingAdapter) Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error) {
	url, err := endpoint(usaSpendingProvider, a.baseURL, "search/spending_by_category/")
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"filters": map[string]any{
			"keywords": []string{params.String("keyword")},
			"time_period": []map[string]string{
				{"start_date": spendingPeriodStart, "end_date": spendingPeriodEnd},
			},
		},
	}

	var body struct {
		Results      []entity.Item  `json:"results"`
		PageMetadata map[string]any `json:"page_metadata"`
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err := decodeResponse(usaSpendingProvider, resp, err, &body); err != nil {
		return nil, err
	}

	return &entity.FetchResult{
		Items: nonNil(body.Results),
		Extra: map[string]any{"pageMetadata": body.PageMetadata},
	}, nil
}
