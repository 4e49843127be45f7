package entity

// ScraperConfig describes the cost and limits of a provider.
type ScraperConfig struct {
	Source         string  `json:"source"`
	Name           string  `json:"name"`
	CostPerRequest float64 `json:"costPerRequest"`
	RateLimit      string  `json:"rateLimit"`
	Enabled        bool    `json:"enabled"`
}

// GooglePlacesCostPerRequest is the billed cost of one Places request in USD.
const GooglePlacesCostPerRequest = 0.017

var ScraperCatalog = []ScraperConfig{
	{Source: "GOOGLE_PLACES", Name: "Google Places", CostPerRequest: GooglePlacesCostPerRequest, RateLimit: "2500 requests/day", Enabled: true},
	{Source: "YELP", Name: "Yelp Fusion", CostPerRequest: 0, RateLimit: "5000 requests/day", Enabled: true},
	{Source: "BBB", Name: "BBB Public Data", CostPerRequest: 0, RateLimit: "100 requests/hour", Enabled: true},
	{Source: "APOLLO", Name: "Apollo", CostPerRequest: 0.10, RateLimit: "Depends on plan", Enabled: false},
}

// ProbeResult is the answer of a cost-estimation probe against a provider.
type ProbeResult struct {
	Source        string  `json:"source"`
	ResultsCount  int     `json:"resultsCount"`
	EstimatedCost float64 `json:"estimatedCost"`
	RateLimit     string  `json:"rateLimit"`
	CreditsUsed   int     `json:"creditsUsed"`
}
