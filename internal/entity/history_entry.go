package entity

import "time"

type HistoryStatus string

const (
	HistoryStatusSuccess HistoryStatus = "SUCCESS"
	HistoryStatusFailed  HistoryStatus = "FAILED"
	// HistoryStatusInProgress is counted by stats but never written.
	HistoryStatusInProgress HistoryStatus = "IN_PROGRESS"
)

// HistoryEntry mirrors the append-only `scrape_history` table.
type HistoryEntry struct {
	ID           string        `json:"id"`
	Source       Source        `json:"source"`
	Status       HistoryStatus `json:"status"`
	ResultsCount int           `json:"resultsCount"`
	DurationMS   int64         `json:"durationMs"`
	Error        *string       `json:"error"`
	UserID       string        `json:"userId"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ScrapeStats are the per-user aggregate counts over history entries.
type ScrapeStats struct {
	Total      int64 `json:"total"`
	Successful int64 `json:"successful"`
	Failed     int64 `json:"failed"`
	InProgress int64 `json:"inProgress"`
}
