package entity

// FetchResult is what an adapter returns for one fetch: the normalized items plus
// source-specific extra response fields (pagination, totals, summaries).
type FetchResult struct {
	Items []Item
	Extra map[string]any
}
