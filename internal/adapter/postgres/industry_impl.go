package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/bizscrape-service/internal/entity"
)

// IndustryRepoImpl stores industries and their players in `industries` and
// `major_players`.
type IndustryRepoImpl struct {
	db *pgxpool.Pool
}

func NewIndustryRepo(db *pgxpool.Pool) *IndustryRepoImpl {
	return &IndustryRepoImpl{db: db}
}

// Create writes the industry and its players within a single transaction.
func (r *IndustryRepoImpl) Create(ctx context.Context, industry *entity.Industry) error {
	paramsJSON, err := json.Marshal(industry.Parameters)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO industries (id, name, description, parameters, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		industry.ID, industry.Name, industry.Description, paramsJSON, industry.UserID, industry.CreatedAt,
	)
	if err != nil {
		return err
	}

	if len(industry.MajorPlayers) > 0 {
		batch := &pgx.Batch{}
		for _, p := range industry.MajorPlayers {
			batch.Queue(`INSERT INTO major_players (id, industry_id, name, type) VALUES ($1, $2, $3, $4)`,
				p.ID, industry.ID, p.Name, p.Type)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *IndustryRepoImpl) FindByID(ctx context.Context, id string) (*entity.Industry, error) {
	list, err := r.query(ctx,
		`SELECT id, name, description, parameters, user_id, created_at FROM industries WHERE id = $1`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, entity.ErrIndustryNotFound
	}
	return list[0], nil
}

func (r *IndustryRepoImpl) ListByUser(ctx context.Context, userID, id string) ([]*entity.Industry, error) {
	return r.query(ctx,
		`SELECT id, name, description, parameters, user_id, created_at
		 FROM industries
		 WHERE user_id = $1 AND ($2::text = '' OR id = $2::text)
		 ORDER BY created_at DESC`,
		userID, id,
	)
}

func (r *IndustryRepoImpl) query(ctx context.Context, sql string, args ...any) ([]*entity.Industry, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	industries := []*entity.Industry{}
	byID := map[string]*entity.Industry{}
	var ids []string
	for rows.Next() {
		var ind entity.Industry
		var paramsJSON []byte
		if err := rows.Scan(&ind.ID, &ind.Name, &ind.Description, &paramsJSON, &ind.UserID, &ind.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(paramsJSON, &ind.Parameters); err != nil {
			return nil, err
		}
		ind.MajorPlayers = []entity.Player{}
		industries = append(industries, &ind)
		byID[ind.ID] = &ind
		ids = append(ids, ind.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return industries, nil
	}

	players, err := r.db.Query(ctx,
		`SELECT id, industry_id, name, type FROM major_players WHERE industry_id = ANY($1) ORDER BY name`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer players.Close()
	for players.Next() {
		var p entity.Player
		var industryID string
		if err := players.Scan(&p.ID, &industryID, &p.Name, &p.Type); err != nil {
			return nil, err
		}
		if ind, ok := byID[industryID]; ok {
			ind.MajorPlayers = append(ind.MajorPlayers, p)
		}
	}
	return industries, players.Err()
}
