package repository

import (
	"context"

	"github.com/user/bizscrape-service/internal/entity"
)

// Adapter translates normalized parameters into one provider call.
type Adapter interface {
	Source() entity.Source
	// Validate checks required fields and credentials without any network call.
	// It returns *entity.ValidationError or *entity.ConfigError.
	Validate(params entity.Params) error
	// Fetch performs the outbound call. Failures are *entity.ProviderError.
	Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error)
}
