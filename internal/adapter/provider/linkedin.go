package provider

import (
	"context"

	"github.com/user/bizscrape-service/internal/entity"
)

// LinkedInAdapter returns a fixed company profile. The LinkedIn API requires partner
// access, so no outbound call is made.
type LinkedInAdapter struct{}

func NewLinkedInAdapter() *LinkedInAdapter {
	return &LinkedInAdapter{}
}

func (a *LinkedInAdapter) Source() entity.Source { return entity.SourceLinkedIn }

func (a *LinkedInAdapter) Validate(params entity.Params) error {
	if params.String("companyName") == "" {
		return entity.Required("companyName", "Company name")
	}
	return nil
}

func (a *LinkedInAdapter) Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &entity.ProviderError{Provider: "LinkedIn", Type: entity.ProviderErrorTransport, Cause: err}
	}
	profile := entity.Item{
		"companyName":  params.String("companyName"),
		"companySize":  "1001-5000",
		"industry":     "Technology",
		"specialties":  []string{"Software", "Cloud Computing"},
		"founded":      2010,
		"headquarters": "San Francisco, CA",
	}
	return &entity.FetchResult{Items: []entity.Item{profile}, Extra: map[string]any{}}, nil
}
