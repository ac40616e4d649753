package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

// dietaryService implements the dietary.Service interface
type dietaryService struct {
	repo   dietary.Repository
	clock  clock.Clock
	logger logger.Logger
}

// NewDietaryService creates a new instance of dietary.Service
func NewDietaryService(repo dietary.Repository, clk clock.Clock, logger logger.Logger) (dietary.Service, error) {
	return &dietaryService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}, nil
}

func (s *dietaryService) ListOwn(ctx context.Context, p *access.Principal) ([]*dietary.Restriction, error) {
	if p == nil {
		return nil, apperr.Unauthorized("Bitte melde dich an.")
	}
	return s.repo.ListByUser(ctx, p.UserID)
}

func (s *dietaryService) Create(ctx context.Context, p *access.Principal, in *dietary.Input) (*dietary.Restriction, error) {
	if p == nil {
		return nil, apperr.Unauthorized("Bitte melde dich an.")
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe deine Angaben.", err)
	}

	now := s.clock.Now().UTC()
	r := &dietary.Restriction{
		ID:        uuid.NewString(),
		UserID:    p.UserID,
		Label:     strings.TrimSpace(in.Label),
		Severity:  in.Severity,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create dietary restriction: %w", err)
	}
	return r, nil
}

func (s *dietaryService) Update(ctx context.Context, p *access.Principal, id string, in *dietary.Input) (*dietary.Restriction, error) {
	r, err := s.owned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe deine Angaben.", err)
	}

	r.Label = strings.TrimSpace(in.Label)
	r.Severity = in.Severity
	r.Notes = in.Notes
	r.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update dietary restriction: %w", err)
	}
	return r, nil
}

func (s *dietaryService) Delete(ctx context.Context, p *access.Principal, id string) error {
	if _, err := s.owned(ctx, p, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// owned loads a restriction of the caller. Foreign records look like missing ones.
func (s *dietaryService) owned(ctx context.Context, p *access.Principal, id string) (*dietary.Restriction, error) {
	if p == nil {
		return nil, apperr.Unauthorized("Bitte melde dich an.")
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != p.UserID {
		return nil, dietary.ErrNotFound
	}
	return r, nil
}

func (s *dietaryService) CateringOverview(ctx context.Context, p *access.Principal) ([]dietary.CateringItem, error) {
	if err := access.Require(p, access.PermDietaryReadAll); err != nil {
		return nil, err
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dietary restrictions: %w", err)
	}
	return dietary.Summarize(all), nil
}
