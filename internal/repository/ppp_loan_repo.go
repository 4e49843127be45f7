package repository

import (
	"context"

	"github.com/user/bizscrape-service/internal/entity"
)

// PPPLoanRepository stores normalized PPP loan records.
type PPPLoanRepository interface {
	SaveAll(ctx context.Context, loans []*entity.PPPLoan) error
	// List returns loans ordered by approval date, newest first. An empty companyID
	// matches every loan.
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.PPPLoan, error)
	Count(ctx context.Context, companyID string) (int64, error)
}
