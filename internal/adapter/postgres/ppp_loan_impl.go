package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/bizscrape-service/internal/entity"
)

// PPPLoanRepoImpl stores normalized loans in `ppp_loans`.
type PPPLoanRepoImpl struct {
	db *pgxpool.Pool
}

func NewPPPLoanRepo(db *pgxpool.Pool) *PPPLoanRepoImpl {
	return &PPPLoanRepoImpl{db: db}
}

func (r *PPPLoanRepoImpl) SaveAll(ctx context.Context, loans []*entity.PPPLoan) error {
	if len(loans) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, l := range loans {
		rawJSON, err := json.Marshal(l.RawData)
		if err != nil {
			return err
		}
		batch.Queue(`INSERT INTO ppp_loans (id, company_id, borrower_name, loan_amount, loan_date, jobs_retained,
		                                    address, city, state, zip, naics_code, industry, lender, raw_data, created_at)
		             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			l.ID, l.CompanyID, l.BorrowerName, l.Amount, nullTime(l.ApprovedAt), l.JobsRetained,
			l.Address, l.City, l.State, l.Zip, l.NAICSCode, l.Industry, l.Lender, rawJSON, l.CreatedAt)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PPPLoanRepoImpl) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.PPPLoan, error) {
	query := `
		SELECT id, company_id, borrower_name, loan_amount, loan_date, jobs_retained,
		       address, city, state, zip, naics_code, industry, lender, raw_data, created_at
		FROM ppp_loans
		WHERE ($1::text = '' OR company_id = $1::text)
		ORDER BY loan_date DESC NULLS LAST
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []*entity.PPPLoan{}
	for rows.Next() {
		var l entity.PPPLoan
		var rawJSON []byte
		var approvedAt *time.Time
		if err := rows.Scan(
			&l.ID,
			&l.CompanyID,
			&l.BorrowerName,
			&l.Amount,
			&approvedAt,
			&l.JobsRetained,
			&l.Address,
			&l.City,
			&l.State,
			&l.Zip,
			&l.NAICSCode,
			&l.Industry,
			&l.Lender,
			&rawJSON,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		if approvedAt != nil {
			l.ApprovedAt = *approvedAt
		}
		if err := json.Unmarshal(rawJSON, &l.RawData); err != nil {
			return nil, err
		}
		loans = append(loans, &l)
	}
	return loans, rows.Err()
}

func (r *PPPLoanRepoImpl) Count(ctx context.Context, companyID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM ppp_loans WHERE ($1::text = '' OR company_id = $1::text);`,
		companyID,
	).Scan(&n)
	return n, err
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
