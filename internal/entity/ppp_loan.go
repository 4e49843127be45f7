package entity

import "time"

// PPPLoan is the normalized PPP loan record, stored in `ppp_loans` together with
// the raw item it was built from.
type PPPLoan struct {
	ID           string    `json:"id"`
	CompanyID    *string   `json:"companyId"`
	BorrowerName string    `json:"name"`
	Amount       float64   `json:"amount"`
	ApprovedAt   time.Time `json:"date,omitzero"`
	JobsRetained int       `json:"jobs"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Zip          string    `json:"zip"`
	NAICSCode    string    `json:"naicsCode,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	Lender       string    `json:"lender,omitempty"`
	RawData      Item      `json:"rawData,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Item renders the loan in the normalized item shape returned to callers.
func (l PPPLoan) Item() Item {
	item := Item{
		"name":    l.BorrowerName,
		"amount":  l.Amount,
		"jobs":    l.JobsRetained,
		"address": l.Address,
		"city":    l.City,
		"state":   l.State,
		"zip":     l.Zip,
	}
	if !l.ApprovedAt.IsZero() {
		item["date"] = l.ApprovedAt.Format(time.RFC3339)
	}
	if l.NAICSCode != "" {
		item["naicsCode"] = l.NAICSCode
	}
	if l.Industry != "" {
		item["industry"] = l.Industry
	}
	if l.Lender != "" {
		item["lender"] = l.Lender
	}
	return item
}

// PPPLoanFromItem reads a normalized PPP item back into a loan record.
func PPPLoanFromItem(item Item) PPPLoan {
	return PPPLoan{
		BorrowerName: item.String("name"),
		Amount:       item.Float("amount"),
		ApprovedAt:   item.Time("date"),
		JobsRetained: item.Int("jobs", 0),
		Address:      item.String("address"),
		City:         item.String("city"),
		State:        item.String("state"),
		Zip:          item.String("zip"),
		NAICSCode:    item.String("naicsCode"),
		Industry:     item.String("industry"),
		Lender:       item.String("lender"),
		RawData:      item,
	}
}

// LoanSummary aggregates the loans returned by one PPP fetch.
type LoanSummary struct {
	TotalLoans        int              `json:"totalLoans"`
	TotalAmount       float64          `json:"totalAmount"`
	TotalJobs         int              `json:"totalJobs"`
	AverageLoanAmount float64          `json:"averageLoanAmount"`
	ByState           []StateLoanCount `json:"byState"`
}

type StateLoanCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// SummarizeLoans computes totals; ByState keeps first-seen state order.
func SummarizeLoans(loans []PPPLoan) LoanSummary {
	s := LoanSummary{TotalLoans: len(loans), ByState: []StateLoanCount{}}
	index := map[string]int{}
	for _, l := range loans {
		s.TotalAmount += l.Amount
		s.TotalJobs += l.JobsRetained
		i, ok := index[l.State]
		if !ok {
			i = len(s.ByState)
			index[l.State] = i
			s.ByState = append(s.ByState, StateLoanCount{State: l.State})
		}
		s.ByState[i].Count++
	}
	if len(loans) > 0 {
		s.AverageLoanAmount = s.TotalAmount / float64(len(loans))
	}
	return s
}

// Page describes one page of a paginated listing.
type Page struct {
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
	Current int   `json:"current"`
	Limit   int   `json:"limit"`
}
