package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

var (
	errInviteUnknown  = apperr.NotFound("INVITE_NOT_FOUND", "Diese Einladung gibt es nicht.")
	errInviteRevoked  = apperr.Gone("INVITE_REVOKED", "Diese Einladung wurde zurückgezogen.")
	errInviteExpired  = apperr.Gone("INVITE_EXPIRED", "Diese Einladung ist abgelaufen.")
	errInviteRedeemed = apperr.Conflict("INVITE_REDEEMED", "Diese Einladung wurde bereits eingelöst.")
	errEmailTaken     = apperr.Conflict("EMAIL_TAKEN", "Diese E-Mail-Adresse ist bereits registriert.")
)

// OnboardingSettings holds the invite defaults.
type OnboardingSettings struct {
	InviteTTL time.Duration
	BaseURL   string
}

// onboardingService implements the onboarding.Service interface
type onboardingService struct {
	invites  onboarding.InviteRepository
	profiles onboarding.ProfileRepository
	uow      onboarding.UnitOfWork
	tokens   onboarding.TokenGenerator
	hasher   auth.PasswordHasher
	clock    clock.Clock
	settings OnboardingSettings
	logger   logger.Logger
}

// NewOnboardingService creates a new instance of onboarding.Service
func NewOnboardingService(
	invites onboarding.InviteRepository,
	profiles onboarding.ProfileRepository,
	uow onboarding.UnitOfWork,
	tokens onboarding.TokenGenerator,
	hasher auth.PasswordHasher,
	clk clock.Clock,
	settings OnboardingSettings,
	logger logger.Logger,
) (onboarding.Service, error) {
	if settings.InviteTTL <= 0 {
		return nil, fmt.Errorf("invite ttl must be positive")
	}
	return &onboardingService{
		invites:  invites,
		profiles: profiles,
		uow:      uow,
		tokens:   tokens,
		hasher:   hasher,
		clock:    clk,
		settings: settings,
		logger:   logger,
	}, nil
}

func (s *onboardingService) CreateInvite(ctx context.Context, p *access.Principal, req *onboarding.CreateInviteRequest) (*onboarding.CreatedInvite, error) {
	if err := access.Require(p, access.PermOnboardingManage); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation("Ungültige Angaben für die Einladung.", err)
	}

	token, hash, err := s.tokens.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}

	ttl := req.ExpiresIn
	if ttl == 0 {
		ttl = s.settings.InviteTTL
	}
	now := s.clock.Now().UTC()
	invite := &onboarding.Invite{
		ID:        uuid.NewString(),
		TokenHash: hash,
		Label:     strings.TrimSpace(req.Label),
		Email:     members.NormalizeEmail(req.Email),
		Roles:     req.Roles,
		ExpiresAt: now.Add(ttl),
		CreatedBy: p.UserID,
		CreatedAt: now,
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Created invite %s expiring %s", invite.ID, invite.ExpiresAt.Format(time.RFC3339)))
	return &onboarding.CreatedInvite{
		Invite: invite,
		Token:  token,
		Link:   InviteLink(s.settings.BaseURL, token),
	}, nil
}

// InviteLink builds the onboarding page URL for a raw token.
func InviteLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/onboarding/" + token
}

func (s *onboardingService) ListInvites(ctx context.Context, p *access.Principal, includeClosed bool) ([]*onboarding.Invite, error) {
	if err := access.Require(p, access.PermOnboardingManage); err != nil {
		return nil, err
	}
	return s.invites.List(ctx, includeClosed)
}

func (s *onboardingService) RevokeInvite(ctx context.Context, p *access.Principal, id string) error {
	if err := access.Require(p, access.PermOnboardingManage); err != nil {
		return err
	}
	invite, err := s.invites.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invite.RedeemedAt != nil {
		return errInviteRedeemed
	}
	if invite.RevokedAt != nil {
		return nil
	}
	if err := s.invites.Revoke(ctx, id, s.clock.Now().UTC()); err != nil {
		return fmt.Errorf("failed to revoke invite: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Revoked invite %s", id))
	return nil
}

func (s *onboardingService) Inspect(ctx context.Context, token string) (*onboarding.InviteInfo, error) {
	invite, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	return &onboarding.InviteInfo{
		Status:    invite.Status(s.clock.Now()),
		Label:     invite.Label,
		Email:     invite.Email,
		ExpiresAt: invite.ExpiresAt,
	}, nil
}

func (s *onboardingService) lookup(ctx context.Context, token string) (*onboarding.Invite, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errInviteUnknown
	}
	invite, err := s.invites.GetByTokenHash(ctx, s.tokens.Hash(token))
	if err != nil {
		if errors.Is(err, onboarding.ErrInviteNotFound) {
			return nil, errInviteUnknown
		}
		return nil, fmt.Errorf("failed to load invite: %w", err)
	}
	return invite, nil
}

// Redeem turns an invite into an account. Every write happens in one
// transaction; any failure leaves no trace.
func (s *onboardingService) Redeem(ctx context.Context, token string, req *onboarding.RedeemRequest) (*members.User, error) {
	invite, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	switch invite.Status(now) {
	case onboarding.InviteStatusRevoked:
		return nil, errInviteRevoked
	case onboarding.InviteStatusRedeemed:
		return nil, errInviteRedeemed
	case onboarding.InviteStatusExpired:
		return nil, errInviteExpired
	}

	if err := req.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe deine Angaben.", err)
	}
	email := members.NormalizeEmail(req.Email)
	if invite.Email != "" && invite.Email != email {
		return nil, apperr.Validation("Die E-Mail-Adresse passt nicht zur Einladung.", nil)
	}
	if !req.BirthDate.Before(now) {
		return nil, apperr.Validation("Das Geburtsdatum liegt in der Zukunft.", nil)
	}

	isMinor := onboarding.IsMinorAt(req.BirthDate, now)
	submission := &consent.Submission{Consents: req.PhotoConsent, GuardianName: req.GuardianName}
	if err := submission.Validate(isMinor); err != nil {
		if errors.Is(err, consent.ErrGuardianRequired) {
			return nil, apperr.Validation("Für Minderjährige brauchen wir den Namen einer erziehungsberechtigten Person.", err)
		}
		return nil, apperr.Validation("Bitte prüfe die Foto-Einwilligung.", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &members.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Active:       true,
		Roles:        invite.RolesWithMember(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.uow.Do(ctx, func(repos onboarding.Repositories) error {
		if _, err := repos.Users.GetByEmail(ctx, email); err == nil {
			return errEmailTaken
		} else if !errors.Is(err, members.ErrNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}

		if err := repos.Users.Create(ctx, user); err != nil {
			if errors.Is(err, members.ErrEmailTaken) {
				return errEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		profile := &onboarding.Profile{
			UserID:                user.ID,
			BirthDate:             req.BirthDate,
			Street:                req.Street,
			PostalCode:            req.PostalCode,
			City:                  req.City,
			EmergencyContactName:  req.EmergencyContactName,
			EmergencyContactPhone: req.EmergencyContactPhone,
			Experience:            req.Experience,
			Interests:             req.Interests,
			IsMinor:               isMinor,
			CreatedAt:             now,
		}
		if err := repos.Profiles.Create(ctx, profile); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		for _, in := range req.Dietary {
			restriction := &dietary.Restriction{
				ID:        uuid.NewString(),
				UserID:    user.ID,
				Label:     strings.TrimSpace(in.Label),
				Severity:  in.Severity,
				Notes:     in.Notes,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := repos.Dietary.Create(ctx, restriction); err != nil {
				return fmt.Errorf("failed to create dietary restriction: %w", err)
			}
		}

		photo := &consent.PhotoConsent{ID: uuid.NewString(), UserID: user.ID}
		photo.Apply(submission, now)
		if err := repos.Consents.Create(ctx, photo); err != nil {
			return fmt.Errorf("failed to create photo consent: %w", err)
		}

		if err := repos.Invites.MarkRedeemed(ctx, invite.ID, user.ID, now); err != nil {
			switch {
			case errors.Is(err, onboarding.ErrInviteAlreadyRedeemed):
				return errInviteRedeemed
			case errors.Is(err, onboarding.ErrInviteRevoked):
				return errInviteRevoked
			case errors.Is(err, onboarding.ErrInviteExpired):
				return errInviteExpired
			}
			return fmt.Errorf("failed to mark invite redeemed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Invite %s redeemed by new user %s", invite.ID, user.ID))
	return user, nil
}

func (s *onboardingService) GetProfile(ctx context.Context, p *access.Principal, userID string) (*onboarding.Profile, error) {
	if err := access.RequireSelfOr(p, userID, access.PermMembersManage); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, userID)
}
