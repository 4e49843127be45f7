package provider

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/user/bizscrape-service/internal/entity"
)

const yelpDefaultLimit = 50

// YelpAdapter searches the Yelp Fusion business search.
type YelpAdapter struct {
	baseURL string
	apiKey  string
	client  *resty.Client
}

func NewYelpAdapter(baseURL, apiKey string, client *resty.Client) *YelpAdapter {
	return &YelpAdapter{baseURL: baseURL, apiKey: apiKey, client: client}
}

func (a *YelpAdapter) Source() entity.Source { return entity.SourceYelp }

func (a *YelpAdapter) Validate(params entity.Params) error {
	if params.String("term") == "" {
		return entity.Required("term", "Search term")
	}
	if params.String("location") == "" {
		return entity.Required("location", "Location")
	}
	if a.apiKey == "" {
		return &entity.ConfigError{Source: entity.SourceYelp, Key: "YELP_API_KEY"}
	}
	return nil
}

func (a *YelpAdapter) Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error) {
	url, err := endpoint("Yelp", a.baseURL, "businesses/search")
	if err != nil {
		return nil, err
	}

	query := map[string]string{
		"term":     params.String("term"),
		"location": params.String("location"),
		"limit":    strconv.Itoa(params.Int("limit", yelpDefaultLimit)),
	}
	if categories := params.String("categories"); categories != "" {
		query["categories"] = categories
	}

	var body struct {
		Businesses []entity.Item `json:"businesses"`
		Total      int           `json:"total"`
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(a.apiKey).
		SetQueryParams(query).
		Get(url)
	if err := decodeResponse("Yelp", resp, err, &body); err != nil {
		return nil, err
	}

	return &entity.FetchResult{
		Items: nonNil(body.Businesses),
		Extra: map[string]any{"total": body.Total},
	}, nil
}
