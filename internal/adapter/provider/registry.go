package provider

import (
	"github.com/go-resty/resty/v2"
	"github.com/user/bizscrape-service/internal/repository"
	"github.com/user/bizscrape-service/pkg/config"
)

// Adapters wires every source from the provider configuration. The Google adapter is
// returned separately as well because it also serves cost probes.
func Adapters(cfg config.Providers, client *resty.Client) ([]repository.Adapter, *GoogleAdapter) {
	google := NewGoogleAdapter(cfg.GoogleBaseURL, cfg.GoogleAPIKey, client)
	return []repository.Adapter{
		google,
		NewYelpAdapter(cfg.YelpBaseURL, cfg.YelpAPIKey, client),
		NewBBBAdapter(cfg.BBBBaseURL, client),
		NewApolloAdapter(cfg.ApolloBaseURL, cfg.ApolloAPIKey, client),
		NewPPPAdapter(cfg.PPPBaseURL, client),
		NewLinkedInAdapter(),
		NewUSASpendingAdapter(cfg.USASpendingBaseURL, client),
		NewAngiAdapter(cfg.AngiBaseURL, cfg.AngiAPIKey, client),
	}, google
}
