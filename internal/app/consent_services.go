package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

// consentService implements the consent.Service interface
type consentService struct {
	consents consent.Repository
	profiles onboarding.ProfileRepository
	clock    clock.Clock
	logger   logger.Logger
}

// NewConsentService creates a new instance of consent.Service
func NewConsentService(consents consent.Repository, profiles onboarding.ProfileRepository, clk clock.Clock, logger logger.Logger) (consent.Service, error) {
	return &consentService{
		consents: consents,
		profiles: profiles,
		clock:    clk,
		logger:   logger,
	}, nil
}

func (s *consentService) GetOwn(ctx context.Context, p *access.Principal) (*consent.PhotoConsent, error) {
	if p == nil {
		return nil, apperr.Unauthorized("Bitte melde dich an.")
	}
	return s.consents.GetByUserID(ctx, p.UserID)
}

// Submit creates or replaces the caller's consent; it always goes back to review.
func (s *consentService) Submit(ctx context.Context, p *access.Principal, sub *consent.Submission) (*consent.PhotoConsent, error) {
	if p == nil {
		return nil, apperr.Unauthorized("Bitte melde dich an.")
	}

	isMinor, err := s.isMinor(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := sub.Validate(isMinor); err != nil {
		if errors.Is(err, consent.ErrGuardianRequired) {
			return nil, apperr.Validation("Für Minderjährige brauchen wir den Namen einer erziehungsberechtigten Person.", err)
		}
		return nil, apperr.Validation("Bitte prüfe deine Angaben.", err)
	}

	now := s.clock.Now().UTC()
	existing, err := s.consents.GetByUserID(ctx, p.UserID)
	switch {
	case errors.Is(err, consent.ErrNotFound):
		c := &consent.PhotoConsent{ID: uuid.NewString(), UserID: p.UserID}
		c.Apply(sub, now)
		if err := s.consents.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to create photo consent: %w", err)
		}
		return c, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load photo consent: %w", err)
	}

	existing.Apply(sub, now)
	if err := s.consents.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update photo consent: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Photo consent of user %s resubmitted", p.UserID))
	return existing, nil
}

// isMinor reads the onboarding profile; members without one count as adults.
func (s *consentService) isMinor(ctx context.Context, userID string) (bool, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, onboarding.ErrProfileNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load profile: %w", err)
	}
	return onboarding.IsMinorAt(profile.BirthDate, s.clock.Now()), nil
}

func (s *consentService) Withdraw(ctx context.Context, p *access.Principal) (*consent.PhotoConsent, error) {
	if p == nil {
		return nil, apperr.Unauthorized("Bitte melde dich an.")
	}
	c, err := s.consents.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	c.Consents = false
	c.Status = consent.StatusWithdrawn
	c.UpdatedAt = s.clock.Now().UTC()
	if err := s.consents.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to withdraw photo consent: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Photo consent of user %s withdrawn", p.UserID))
	return c, nil
}

func (s *consentService) ListPending(ctx context.Context, p *access.Principal) ([]*consent.PhotoConsent, error) {
	if err := access.Require(p, access.PermPhotoConsentReview); err != nil {
		return nil, err
	}
	return s.consents.ListByStatus(ctx, consent.StatusPending)
}

func (s *consentService) Review(ctx context.Context, p *access.Principal, userID string, approve bool, note string) (*consent.PhotoConsent, error) {
	if err := access.Require(p, access.PermPhotoConsentReview); err != nil {
		return nil, err
	}
	c, err := s.consents.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.Status != consent.StatusPending {
		return nil, apperr.Conflict("CONSENT_NOT_PENDING", "Diese Einwilligung wartet nicht auf Prüfung.")
	}
	note = strings.TrimSpace(note)
	if !approve && note == "" {
		return nil, apperr.Validation("Bitte gib einen Grund für die Ablehnung an.", nil)
	}

	now := s.clock.Now().UTC()
	reviewer := p.UserID
	c.Status = consent.StatusRejected
	if approve {
		c.Status = consent.StatusApproved
	}
	c.ReviewNote = note
	c.ReviewedBy = &reviewer
	c.ReviewedAt = &now
	c.UpdatedAt = now
	if err := s.consents.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Photo consent of user %s reviewed: %s", userID, c.Status))
	return c, nil
}

func (s *consentService) PublishableUsers(ctx context.Context, userIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	list, err := s.consents.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo consents: %w", err)
	}
	for _, c := range list {
		if c.AllowsPublication() {
			out[c.UserID] = true
		}
	}
	return out, nil
}
