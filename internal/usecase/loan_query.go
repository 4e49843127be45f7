package usecase

import (
	"context"

	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/repository"
)

const (
	defaultLoanPage  = 1
	defaultLoanLimit = 10
)

type LoanPage struct {
	Data       []*entity.PPPLoan `json:"data"`
	Pagination entity.Page       `json:"pagination"`
}

// LoanQuery pages through stored PPP loans, newest approval first.
type LoanQuery interface {
	List(ctx context.Context, companyID string, page, limit int) (*LoanPage, error)
}

type loanQuery struct {
	loans repository.PPPLoanRepository
}

func NewLoanQuery(loans repository.PPPLoanRepository) LoanQuery {
	return &loanQuery{loans: loans}
}

func (q *loanQuery) List(ctx context.Context, companyID string, page, limit int) (*LoanPage, error) {
	if page < 1 {
		page = defaultLoanPage
	}
	if limit < 1 {
		limit = defaultLoanLimit
	}

	total, err := q.loans.Count(ctx, companyID)
	if err != nil {
		return nil, storageErr("count ppp loans", err)
	}
	loans, err := q.loans.List(ctx, companyID, limit, (page-1)*limit)
	if err != nil {
		return nil, storageErr("list ppp loans", err)
	}
	if loans == nil {
		loans = []*entity.PPPLoan{}
	}

	return &LoanPage{
		Data: loans,
		Pagination: entity.Page{
			Total:   total,
			Pages:   (total + int64(limit) - 1) / int64(limit),
			Current: page,
			Limit:   limit,
		},
	}, nil
}
