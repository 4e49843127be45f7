package provider

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/user/bizscrape-service/internal/entity"
)

const (
	angiDefaultRadius = 25
	angiDefaultLimit  = 50
)

// AngiAdapter searches Angi service providers.
type AngiAdapter struct {
	baseURL string
	apiKey  string
	client  *resty.Client
}

func NewAngiAdapter(baseURL, apiKey string, client *resty.Client) *AngiAdapter {
	return &AngiAdapter{baseURL: baseURL, apiKey: apiKey, client: client}
}

func (a *AngiAdapter) Source() entity.Source { return entity.SourceAngi }

func (a *AngiAdapter) Validate(params entity.Params) error {
	if params.String("serviceType") == "" {
		return entity.Required("serviceType", "Service type")
	}
	if params.String("location") == "" {
		return entity.Required("location", "Location")
	}
	if a.apiKey == "" {
		return &entity.ConfigError{Source: entity.SourceAngi, Key: "ANGI_API_KEY"}
	}
	return nil
}

func (a *AngiAdapter) Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error) {
	url, err := endpoint("Angi", a.baseURL, "businesses/search")
	if err != nil {
		return nil, err
	}

	var body struct {
		Businesses []entity.Item `json:"businesses"`
		Total      int           `json:"total"`
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(a.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"service":  params.String("serviceType"),
			"location": params.String("location"),
			"radius":   params.Int("radius", angiDefaultRadius),
			"limit":    params.Int("limit", angiDefaultLimit),
		}).
		Post(url)
	if err := decodeResponse("Angi", resp, err, &body); err != nil {
		return nil, err
	}

	total := body.Total
	if total == 0 {
		total = len(body.Businesses)
	}
	return &entity.FetchResult{
		Items: nonNil(body.Businesses),
		Extra: map[string]any{"total": total},
	}, nil
}
