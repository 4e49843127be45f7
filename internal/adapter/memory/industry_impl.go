package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/user/bizscrape-service/internal/entity"
)

type IndustryRepoImpl struct {
	mu         sync.RWMutex
	industries map[string]entity.Industry
}

func NewIndustryRepo() *IndustryRepoImpl {
	return &IndustryRepoImpl{industries: make(map[string]entity.Industry)}
}

func (r *IndustryRepoImpl) Create(ctx context.Context, industry *entity.Industry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *industry
	c.MajorPlayers = append([]entity.Player(nil), industry.MajorPlayers...)
	r.industries[industry.ID] = c
	return nil
}

func (r *IndustryRepoImpl) FindByID(ctx context.Context, id string) (*entity.Industry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ind, ok := r.industries[id]
	if !ok {
		return nil, entity.ErrIndustryNotFound
	}
	return &ind, nil
}

// ListByUser returns the user's industries, newest first.
func (r *IndustryRepoImpl) ListByUser(ctx context.Context, userID, id string) ([]*entity.Industry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*entity.Industry{}
	for _, ind := range r.industries {
		if ind.UserID != userID || (id != "" && ind.ID != id) {
			continue
		}
		ind := ind
		out = append(out, &ind)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
