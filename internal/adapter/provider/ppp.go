package provider

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/user/bizscrape-service/internal/entity"
)

const pppProvider = "PPP loan"

// PPPAdapter queries the ProPublica bailout search by borrower name and filters the
// results by city and zip code client side.
type PPPAdapter struct {
	baseURL string
	client  *resty.Client
}

func NewPPPAdapter(baseURL string, client *resty.Client) *PPPAdapter {
	return &PPPAdapter{baseURL: baseURL, client: client}
}

func (a *PPPAdapter) Source() entity.Source { return entity.SourcePPPLoan }

func (a *PPPAdapter) Validate(params entity.Params) error {
	if params.String("companyName") == "" {
		return entity.Required("companyName", "Company name")
	}
	return nil
}

// pppResult is one raw search hit. Numeric fields arrive as strings or numbers.
type pppResult map[string]any

func (a *PPPAdapter) Fetch(ctx context.Context, params entity.Params) (*entity.FetchResult, error) {
	url, err := endpoint(pppProvider, a.baseURL, "search")
	if err != nil {
		return nil, err
	}

	query := map[string]string{"q": params.String("companyName")}
	if state := params.String("state"); state != "" {
		query["state"] = state
	}

	var body struct {
		Results []pppResult `json:"results"`
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(url)
	if err := decodeResponse(pppProvider, resp, err, &body); err != nil {
		return nil, err
	}

	loans := filterLoans(body.Results, params.String("city"), params.String("zipCode"))
	items := make([]entity.Item, 0, len(loans))
	for _, l := range loans {
		items = append(items, l.Item())
	}

	return &entity.FetchResult{
		Items: items,
		Extra: map[string]any{"summary": entity.SummarizeLoans(loans)},
	}, nil
}

func filterLoans(results []pppResult, city, zip string) []entity.PPPLoan {
	loans := make([]entity.PPPLoan, 0, len(results))
	for _, r := range results {
		raw := entity.Item(r)
		if city != "" && !strings.EqualFold(raw.String("city"), city) {
			continue
		}
		if zip != "" && !strings.HasPrefix(raw.String("zip"), zip) {
			continue
		}
		loans = append(loans, normalizeLoan(raw))
	}
	return loans
}

func normalizeLoan(raw entity.Item) entity.PPPLoan {
	return entity.PPPLoan{
		BorrowerName: firstString(raw, "name", "business_name"),
		Amount:       raw.Float("amount"),
		ApprovedAt:   parseLoanDate(firstString(raw, "date_approved", "date")),
		JobsRetained: firstInt(raw, "jobs_reported", "jobs_retained"),
		Address:      raw.String("address"),
		City:         raw.String("city"),
		State:        raw.String("state"),
		Zip:          raw.String("zip"),
		NAICSCode:    raw.String("naics_code"),
		Industry:     raw.String("industry"),
		Lender:       raw.String("lender"),
	}
}

func firstString(raw entity.Item, keys ...string) string {
	for _, k := range keys {
		if v := raw.String(k); v != "" {
			return v
		}
	}
	return ""
}

func firstInt(raw entity.Item, keys ...string) int {
	for _, k := range keys {
		if n := raw.Int(k, 0); n != 0 {
			return n
		}
	}
	return 0
}

func parseLoanDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
