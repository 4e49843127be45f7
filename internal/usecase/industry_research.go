package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/user/bizscrape-service/internal/entity"
	"github.com/user/bizscrape-service/internal/repository"
	"go.uber.org/zap"
)

// ResearchSources are the sources scraped after an industry is created.
var ResearchSources = []entity.Source{entity.SourceLinkedIn, entity.SourceUSASpending}

type CreateIndustryInput struct {
	Name         string
	Description  string
	Parameters   entity.IndustryParameters
	MajorPlayers []string
}

// IndustryResearch stores industries and kicks off their batch scrape.
type IndustryResearch interface {
	// Create stores the industry and its major players, then runs the research
	// batch. A batch failure is logged; the created industry is still returned.
	Create(ctx context.Context, userID string, in CreateIndustryInput) (*entity.Industry, error)
	List(ctx context.Context, userID, id string) ([]*entity.Industry, error)
}

type industryResearch struct {
	industries   repository.IndustryRepository
	orchestrator Orchestrator
	log          *zap.Logger
	now          func() time.Time
	newID        func() string
}

func NewIndustryResearch(industries repository.IndustryRepository, orchestrator Orchestrator, log *zap.Logger) IndustryResearch {
	return &industryResearch{
		industries:   industries,
		orchestrator: orchestrator,
		log:          log,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (r *industryResearch) Create(ctx context.Context, userID string, in CreateIndustryInput) (*entity.Industry, error) {
	if userID == "" {
		return nil, entity.ErrUnauthorized
	}
	if err := validateIndustry(in); err != nil {
		return nil, err
	}

	industry := &entity.Industry{
		ID:           r.newID(),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Parameters:   in.Parameters,
		MajorPlayers: make([]entity.Player, 0, len(in.MajorPlayers)),
		UserID:       userID,
		CreatedAt:    r.now(),
	}
	for _, name := range in.MajorPlayers {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		industry.MajorPlayers = append(industry.MajorPlayers, entity.Player{
			ID:   r.newID(),
			Name: name,
			Type: entity.PlayerTypeMajor,
		})
	}
	if err := r.industries.Create(ctx, industry); err != nil {
		return nil, storageErr("create industry", err)
	}

	if jobID, err := r.orchestrator.RunBatch(ctx, industry.ID, ResearchSources, userID); err != nil {
		r.log.Error("Scraping initialization failed",
			zap.String("industry_id", industry.ID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
	}
	return industry, nil
}

func validateIndustry(in CreateIndustryInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return entity.Required("industryName", "Industry name")
	case strings.TrimSpace(in.Parameters.Size) == "":
		return entity.Required("parameters.size", "Industry size")
	case strings.TrimSpace(in.Parameters.Geography) == "":
		return entity.Required("parameters.geography", "Geography")
	}
	for _, p := range in.MajorPlayers {
		if strings.TrimSpace(p) != "" {
			return nil
		}
	}
	return &entity.ValidationError{Field: "majorPlayers", Message: "At least one major player is required"}
}

func (r *industryResearch) List(ctx context.Context, userID, id string) ([]*entity.Industry, error) {
	if userID == "" {
		return nil, entity.ErrUnauthorized
	}
	list, err := r.industries.ListByUser(ctx, userID, id)
	if err != nil {
		return nil, storageErr("list industries", err)
	}
	return list, nil
}
