// Package provider holds one Adapter per external business-data source.
package provider

import (
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/pkg/utils"
)

const (
	userAgent      = "bizscrape-service/1.0"
	maxBodyExcerpt = 512
)

// NewClient builds the shared outbound client. No retries are configured: a failed
// call fails the job.
func NewClient(timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", userAgent)
	return client
}

// decodeResponse maps a resty outcome onto the provider error taxonomy and decodes a
// successful JSON body into out.
func decodeResponse(provider string, resp *resty.Response, err error, out any) error {
	if err != nil {
		return &entity.ProviderError{Provider: provider, Type: entity.ProviderErrorTransport, Cause: err}
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return &entity.ProviderError{
			Provider:   provider,
			Type:       entity.ProviderErrorStatus,
			StatusCode: code,
			Body:       utils.Excerpt(resp.String(), maxBodyExcerpt),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &entity.ProviderError{Provider: provider, Type: entity.ProviderErrorDecode, Cause: err}
	}
	return nil
}

func endpoint(provider, base, path string) (string, error) {
	u, err := utils.ResolveEndpoint(base, path)
	if err != nil {
		return "", &entity.ProviderError{Provider: provider, Type: entity.ProviderErrorTransport, Cause: err}
	}
	return u, nil
}

func nonNil(items []entity.Item) []entity.Item {
	if items == nil {
		return []entity.Item{}
	}
	return items
}
