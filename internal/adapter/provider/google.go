package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/user/bizscrape-service/internal/entity"
)

const (
	googleDefaultRadius = 5000
	googleDetailFields  = "name,formatted_address,formatted_phone_number,website,rating,user_ratings_total,business_status"
	googleProvider      = "Google Places"
)

// GoogleAdapter runs a Places text search followed by one details call per place.
// Details calls are serial and any failure fails the whole fetch.
type GoogleAdapter struct {
	baseURL string
	apiKey  string
	client  *resty.Client
}

func NewGoogleAdapter(baseURL, apiKey string, client *resty.Client) *GoogleAdapter {
	return &GoogleAdapter{baseURL: baseURL, apiKey: apiKey, client: client}
}

func (a *GoogleAdapter) Source() entity.Source { return entity.SourceGoogleMaps }

func (a *GoogleAdapter) Validate(params entity.Params) error {
	if params.String("query") == "" {
		return entity.Required("query", "Search query")
	}
	if a.apiKey == "" {
		return &entity.ConfigError{Source: entity.SourceGoogleMaps, Key: "GOOGLE_API_KEY"}
	}
	return nil
}

type googlePlace struct {
	PlaceID          string         `json:"place_id"`
	Name             string         `json:"name"`
	FormattedAddress string         `json:"formatted_address"`
	Rating           *float64       `json:"rating"`
	Types            []string       `json:"types"`
	Geometry         map[string]any `json:"geometry"`
}

type googleTextSearch struct {
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message"`
	Results       []googlePlace `json:"results"`
	NextPageToken string        `json:"next_page_token"`
}

func (a *GoogleAdapter) Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error) {
	search, err := a.textSearch(ctx, textQuery(params), params.Int("radius", googleDefaultRadius))
	if err != nil {
		return nil, err
	}

	items := make([]entity.Item, 0, len(search.Results))
	for _, place := range search.Results {
		details, err := a.details(ctx, place.PlaceID)
		if err != nil {
			return nil, err
		}
		item := entity.Item{
			"name":    place.Name,
			"address": place.FormattedAddress,
			"placeId": place.PlaceID,
			"types":   place.Types,
			"details": details,
		}
		if place.Rating != nil {
			item["rating"] = *place.Rating
		}
		if loc, ok := place.Geometry["location"]; ok {
			item["location"] = loc
		}
		items = append(items, item)
	}

	return &entity.FetchResult{
		Items: items,
		Extra: map[string]any{"nextPageToken": search.NextPageToken},
	}, nil
}

// Probe runs only the text search and estimates what a full fetch would cost.
func (a *GoogleAdapter) Probe(ctx context.Context, params entity.Params) (*entity.ProbeResult, error) {
	if err := a.Validate(params); err != nil {
		return nil, err
	}
	search, err := a.textSearch(ctx, textQuery(params), params.Int("radius", googleDefaultRadius))
	if err != nil {
		return nil, err
	}
	n := len(search.Results)
	return &entity.ProbeResult{
		Source:        "GOOGLE_PLACES",
		ResultsCount:  n,
		EstimatedCost: float64(n) * entity.GooglePlacesCostPerRequest,
		RateLimit:     "2500 requests/day",
		CreditsUsed:   1,
	}, nil
}

func textQuery(params entity.Params) string {
	query := params.String("query")
	if location := params.String("location"); location != "" {
		query = query + " in " + location
	}
	return query
}

func (a *GoogleAdapter) textSearch(ctx context.Context, query string, radius int) (*googleTextSearch, error) {
	url, err := endpoint(googleProvider, a.baseURL, "textsearch/json")
	if err != nil {
		return nil, err
	}
	var body googleTextSearch
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":  query,
			"radius": strconv.Itoa(radius),
			"key":    a.apiKey,
		}).
		Get(url)
	if err := decodeResponse(googleProvider, resp, err, &body); err != nil {
		return nil, err
	}
	if err := googleStatus(body.Status, body.ErrorMessage); err != nil {
		return nil, err
	}
	return &body, nil
}

func (a *GoogleAdapter) details(ctx context.Context, placeID string) (map[string]any, error) {
	url, err := endpoint(googleProvider, a.baseURL, "details/json")
	if err != nil {
		return nil, err
	}
	var body struct {
		Status       string         `json:"status"`
		ErrorMessage string         `json:"error_message"`
		Result       map[string]any `json:"result"`
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"place_id": placeID,
			"fields":   googleDetailFields,
			"key":      a.apiKey,
		}).
		Get(url)
	if err := decodeResponse(googleProvider, resp, err, &body); err != nil {
		return nil, err
	}
	if err := googleStatus(body.Status, body.ErrorMessage); err != nil {
		return nil, err
	}
	return body.Result, nil
}

// Places reports quota and key problems in the body with HTTP 200.
func googleStatus(status, message string) error {
	switch status {
	case "", "OK", "ZERO_RESULTS":
		return nil
	}
	body := status
	if message != "" {
		body = fmt.Sprintf("%s: %s", status, message)
	}
	return &entity.ProviderError{Provider: googleProvider, Type: entity.ProviderErrorUpstream, Body: body}
}
