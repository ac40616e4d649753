package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/measurements"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

// measurementService implements the measurements.Service interface
type measurementService struct {
	repo   measurements.Repository
	clock  clock.Clock
	logger logger.Logger
}

// NewMeasurementService creates a new instance of measurements.Service
func NewMeasurementService(repo measurements.Repository, clk clock.Clock, logger logger.Logger) (measurements.Service, error) {
	return &measurementService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}, nil
}

func (s *measurementService) ListForUser(ctx context.Context, p *access.Principal, userID string) ([]*measurements.Measurement, error) {
	if err := access.RequireSelfOr(p, userID, access.PermMeasurementsReadAll); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *measurementService) ListAll(ctx context.Context, p *access.Principal) ([]*measurements.Measurement, error) {
	if err := access.Require(p, access.PermMeasurementsReadAll); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// Record upserts one value per kind. Members may record their own values;
// writing for others needs measurements.manage.
func (s *measurementService) Record(ctx context.Context, p *access.Principal, userID string, inputs []measurements.Input) ([]*measurements.Measurement, error) {
	if err := access.RequireSelfOr(p, userID, access.PermMeasurementsManage); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, apperr.Validation("Keine Maße angegeben.", nil)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperr.Validation("Ungültige Mitglieds-ID.", err)
	}

	now := s.clock.Now().UTC()
	seen := make(map[measurements.Kind]bool, len(inputs))
	batch := make([]*measurements.Measurement, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		if err := in.Validate(); err != nil {
			return nil, apperr.Validation(fmt.Sprintf("Ungültiger Wert für %s.", in.Kind), err)
		}
		if seen[in.Kind] {
			return nil, apperr.Validation(fmt.Sprintf("%s ist doppelt angegeben.", in.Kind), nil)
		}
		seen[in.Kind] = true
		batch = append(batch, &measurements.Measurement{
			ID:         uuid.NewString(),
			UserID:     userID,
			Kind:       in.Kind,
			Value:      in.Value,
			Unit:       in.ResolvedUnit(),
			Notes:      in.Notes,
			MeasuredBy: p.UserID,
			UpdatedAt:  now,
		})
	}

	if err := s.repo.Upsert(ctx, batch...); err != nil {
		return nil, fmt.Errorf("failed to store measurements: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Recorded %d measurements for user %s", len(batch), userID))
	return s.repo.ListByUser(ctx, userID)
}

func (s *measurementService) Delete(ctx context.Context, p *access.Principal, userID string, kind measurements.Kind) error {
	if err := access.RequireSelfOr(p, userID, access.PermMeasurementsManage); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, kind)
}
