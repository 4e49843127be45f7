package provider

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/user/bizscrape-service/internal/entity"
)

const bbbProvider = "BBB"

// BBBAdapter queries the BBB search endpoint. The endpoint answers JSON to API
// clients and an HTML results page otherwise; both are normalized to the same items.
type BBBAdapter struct {
	baseURL string
	client  *resty.Client
}

func NewBBBAdapter(baseURL string, client *resty.Client) *BBBAdapter {
	return &BBBAdapter{baseURL: baseURL, client: client}
}

func (a *BBBAdapter) Source() entity.Source { return entity.SourceBBB }

func (a *BBBAdapter) Validate(params entity.Params) error {
	if params.String("businessName") == "" {
		return entity.Required("businessName", "Business name")
	}
	return nil
}

func (a *BBBAdapter) Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error) {
	url, err := endpoint(bbbProvider, a.baseURL, "search")
	if err != nil {
		return nil, err
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        params.String("businessName"),
			"location": params.String("location"),
			"page":     strconv.Itoa(params.Int("page", 1)),
		}).
		Get(url)
	if err := decodeResponse(bbbProvider, resp, err, nil); err != nil {
		return nil, err
	}

	if strings.Contains(resp.Header().Get("Content-Type"), "html") {
		return parseBBBPage(resp.Body())
	}

	var body struct {
		Results    []entity.Item `json:"results"`
		TotalPages int           `json:"totalPages"`
	}
	if err := decodeResponse(bbbProvider, resp, nil, &body); err != nil {
		return nil, err
	}
	if body.TotalPages == 0 {
		body.TotalPages = 1
	}
	return &entity.FetchResult{
		Items: nonNil(body.Results),
		Extra: map[string]any{"totalPages": body.TotalPages},
	}, nil
}

// parseBBBPage extracts result cards from the HTML search page.
func parseBBBPage(page []byte) (*entity.FetchResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, &entity.ProviderError{Provider: bbbProvider, Type: entity.ProviderErrorDecode, Cause: err}
	}

	items := []entity.Item{}
	doc.Find(".search-result").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Find(".result-business-name").First().Text())
		if name == "" {
			return
		}
		item := entity.Item{
			"name":    name,
			"address": strings.TrimSpace(s.Find(".result-address").First().Text()),
			"phone":   strings.TrimSpace(s.Find(".result-phone").First().Text()),
			"rating":  strings.TrimSpace(s.Find(".result-rating").First().Text()),
		}
		if href, ok := s.Find("a.result-business-name, .result-business-name a").First().Attr("href"); ok {
			item["url"] = href
		}
		if accredited, ok := s.Attr("data-accredited"); ok {
			item["accredited"] = accredited == "true"
		}
		items = append(items, item)
	})

	totalPages := 1
	if v, ok := doc.Find("[data-total-pages]").First().Attr("data-total-pages"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			totalPages = n
		}
	}

	return &entity.FetchResult{
		Items: items,
		Extra: map[string]any{"totalPages": totalPages},
	}, nil
}
