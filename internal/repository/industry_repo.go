package repository

import (
	"context"

	"github.com/user/bizscrape-service/internal/entity"
)

// IndustryRepository stores industries researched by users along with their players.
type IndustryRepository interface {
	Create(ctx context.Context, industry *entity.Industry) error
	// FindByID returns entity.ErrIndustryNotFound when no industry matches.
	FindByID(ctx context.Context, id string) (*entity.Industry, error)
	// ListByUser returns the user's industries; a non-empty id narrows to that one.
	ListByUser(ctx context.Context, userID, id string) ([]*entity.Industry, error)
}
