package entity

import "time"

// ScrapedRecord mirrors the `scraped_records` table.
type ScrapedRecord struct {
	ID        string    `json:"id"`
	Source    Source    `json:"source"`
	RawData   Item      `json:"rawData"`
	Processed bool      `json:"processed"`
	CompanyID *string   `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
}
