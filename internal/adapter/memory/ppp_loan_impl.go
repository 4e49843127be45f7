package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/user/bizscrape-service/internal/entity"
)

type PPPLoanRepoImpl struct {
	mu    sync.RWMutex
	loans []entity.PPPLoan
}

func NewPPPLoanRepo() *PPPLoanRepoImpl {
	return &PPPLoanRepoImpl{}
}

func (r *PPPLoanRepoImpl) SaveAll(ctx context.Context, loans []*entity.PPPLoan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range loans {
		r.loans = append(r.loans, *l)
	}
	return nil
}

func (r *PPPLoanRepoImpl) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.PPPLoan, error) {
	matched := r.matching(companyID)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ApprovedAt.After(matched[j].ApprovedAt)
	})

	out := []*entity.PPPLoan{}
	for i := offset; i < len(matched) && len(out) < limit; i++ {
		l := matched[i]
		out = append(out, &l)
	}
	return out, nil
}

func (r *PPPLoanRepoImpl) Count(ctx context.Context, companyID string) (int64, error) {
	return int64(len(r.matching(companyID))), nil
}

func (r *PPPLoanRepoImpl) matching(companyID string) []entity.PPPLoan {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.PPPLoan
	for _, l := range r.loans {
		if companyID != "" && (l.CompanyID == nil || *l.CompanyID != companyID) {
			continue
		}
		out = append(out, l)
	}
	return out
}
