package provider

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/user/bizscrape-service/internal/entity"
)

const apolloDefaultLimit = 10

// ApolloAdapter searches Apollo organizations.
type ApolloAdapter struct {
	baseURL string
	apiKey  string
	client  *resty.Client
}

func NewApolloAdapter(baseURL, apiKey string, client *resty.Client) *ApolloAdapter {
	return &ApolloAdapter{baseURL: baseURL, apiKey: apiKey, client: client}
}

func (a *ApolloAdapter) Source() entity.Source { return entity.SourceApollo }

func (a *ApolloAdapter) Validate(params entity.Params) error {
	if params.String("companyName") == "" {
		return entity.Required("companyName", "Company name")
	}
	if a.apiKey == "" {
		return &entity.ConfigError{Source: entity.SourceApollo, Key: "APOLLO_API_KEY"}
	}
	return nil
}

func (a *ApolloAdapter) Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error) {
	url, err := endpoint("Apollo", a.baseURL, "organizations/search")
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"q_organization_name": params.String("companyName"),
		"limit":               params.Int("limit", apolloDefaultLimit),
	}
	if domain := params.String("domain"); domain != "" {
		payload["domain"] = domain
	}
	if industry := params.String("industry"); industry != "" {
		payload["industry"] = industry
	}

	var body struct {
		Organizations []entity.Item  `json:"organizations"`
		Pagination    map[string]any `json:"pagination"`
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Cache-Control", "no-cache").
		SetHeader("X-API-Key", a.apiKey).
		SetBody(payload).
		Post(url)
	if err := decodeResponse("Apollo", resp, err, &body); err != nil {
		return nil, err
	}

	return &entity.FetchResult{
		Items: nonNil(body.Organizations),
		Extra: map[string]any{"pagination": body.Pagination},
	}, nil
}
