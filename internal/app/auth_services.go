package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

const minPasswordLength = 10

var errBadCredentials = apperr.Unauthorized("E-Mail oder Passwort ist falsch.")

// authService implements the auth.Service interface
type authService struct {
	users  members.UserRepository
	access access.Service
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
	clock  clock.Clock
	logger logger.Logger
}

// NewAuthService creates a new instance of auth.Service
func NewAuthService(
	users members.UserRepository,
	accessService access.Service,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
	clk clock.Clock,
	logger logger.Logger,
) (auth.Service, error) {
	return &authService{
		users:  users,
		access: accessService,
		hasher: hasher,
		tokens: tokens,
		clock:  clk,
		logger: logger,
	}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	user, err := s.users.GetByEmail(ctx, members.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, members.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn(fmt.Sprintf("Failed login for user %s", user.ID))
		return nil, errBadCredentials
	}
	if !user.Active {
		return nil, apperr.Unauthorized("Dein Zugang ist deaktiviert.")
	}

	token, expiresAt, err := s.tokens.Issue(auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info(fmt.Sprintf("User %s logged in", user.ID))
	return &auth.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*access.Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized("Sitzung ungültig oder abgelaufen.").Wrap(err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, members.ErrNotFound) {
			return nil, apperr.Unauthorized("Sitzung ungültig oder abgelaufen.")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.Active {
		return nil, apperr.Unauthorized("Dein Zugang ist deaktiviert.")
	}

	return s.access.ResolvePrincipal(ctx, user.ID, user.Email, user.Roles)
}

func (s *authService) ChangePassword(ctx context.Context, p *access.Principal, current, next string) error {
	if p == nil {
		return apperr.Unauthorized("Bitte melde dich an.")
	}
	if err := checkPassword(next); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, current); err != nil {
		return apperr.Validation("Das aktuelle Passwort ist falsch.", nil)
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = s.clock.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	s.logger.Info(fmt.Sprintf("User %s changed password", user.ID))
	return nil
}

// checkPassword enforces the length bounds bcrypt can handle.
func checkPassword(pw string) error {
	if len(pw) < minPasswordLength {
		return apperr.Validation(fmt.Sprintf("Das Passwort muss mindestens %d Zeichen haben.", minPasswordLength), nil)
	}
	if len(pw) > 72 {
		return apperr.Validation("Das Passwort darf höchstens 72 Zeichen haben.", nil)
	}
	return nil
}
