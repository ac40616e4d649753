package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

// memberService implements the members.Service interface
type memberService struct {
	users  members.UserRepository
	hasher auth.PasswordHasher
	clock  clock.Clock
	logger logger.Logger
}

// NewMemberService creates a new instance of members.Service
func NewMemberService(users members.UserRepository, hasher auth.PasswordHasher, clk clock.Clock, logger logger.Logger) (members.Service, error) {
	return &memberService{
		users:  users,
		hasher: hasher,
		clock:  clk,
		logger: logger,
	}, nil
}

func (s *memberService) List(ctx context.Context, p *access.Principal, query *members.UserQuery) ([]*members.User, error) {
	if err := access.Require(p, access.PermMembersRead); err != nil {
		return nil, err
	}
	if query == nil {
		query = members.NewUserQuery()
	}
	if query.IncludeInactive && !access.HasPermission(p, access.PermMembersManage) {
		query.IncludeInactive = false
	}
	if err := query.Validate(); err != nil {
		return nil, apperr.Validation("Ungültige Suchparameter.", err)
	}
	return s.users.List(ctx, query)
}

func (s *memberService) GetByID(ctx context.Context, p *access.Principal, userID string) (*members.User, error) {
	if err := access.RequireSelfOr(p, userID, access.PermMembersRead); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *memberService) UpdateOwnProfile(ctx context.Context, p *access.Principal, update *members.ProfileUpdate) (*members.User, error) {
	if p == nil {
		return nil, apperr.Unauthorized("Bitte melde dich an.")
	}
	if err := update.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe deine Angaben.", err)
	}

	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.Phone = update.Phone
	user.UpdatedAt = s.clock.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *memberService) UpdateRoles(ctx context.Context, p *access.Principal, userID string, roles []access.Role) (*members.User, error) {
	if err := access.Require(p, access.PermMembersManage); err != nil {
		return nil, err
	}

	normalized := make([]access.Role, 0, len(roles)+1)
	seen := make(map[access.Role]bool)
	for _, r := range append([]access.Role{access.RoleMitglied}, roles...) {
		if !r.Valid() {
			return nil, apperr.Validation(fmt.Sprintf("Unbekannte Rolle %q.", r), nil)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		normalized = append(normalized, r)
	}

	if seen[access.RoleAdmin] && !p.IsAdmin() {
		return nil, apperr.Forbidden("Nur Admins können Admins ernennen.")
	}
	if userID == p.UserID && p.IsAdmin() && !seen[access.RoleAdmin] {
		return nil, apperr.Conflict("OWN_ADMIN_ROLE", "Du kannst dir die Admin-Rolle nicht selbst entziehen.")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasRole(access.RoleAdmin) && !p.IsAdmin() {
		return nil, apperr.Forbidden("Nur Admins können Admins bearbeiten.")
	}

	if err := s.users.SetRoles(ctx, userID, normalized); err != nil {
		return nil, fmt.Errorf("failed to set roles: %w", err)
	}
	user.Roles = normalized

	s.logger.Info(fmt.Sprintf("Roles of user %s set to %v by %s", userID, normalized, p.UserID))
	return user, nil
}

func (s *memberService) SetActive(ctx context.Context, p *access.Principal, userID string, active bool) (*members.User, error) {
	if err := access.Require(p, access.PermMembersManage); err != nil {
		return nil, err
	}
	if userID == p.UserID && !active {
		return nil, apperr.Conflict("OWN_ACCOUNT", "Du kannst dein eigenes Konto nicht deaktivieren.")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasRole(access.RoleAdmin) && !p.IsAdmin() {
		return nil, apperr.Forbidden("Nur Admins können Admins bearbeiten.")
	}

	user.Active = active
	user.UpdatedAt = s.clock.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info(fmt.Sprintf("User %s active=%t set by %s", userID, active, p.UserID))
	return user, nil
}

func (s *memberService) CreateAdmin(ctx context.Context, email, password, firstName, lastName string) (*members.User, error) {
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	email = members.NormalizeEmail(email)
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if existing.HasRole(access.RoleAdmin) {
			return existing, nil
		}
		return nil, apperr.Conflict("EMAIL_TAKEN", "Diese E-Mail-Adresse ist bereits registriert.")
	}
	if !errors.Is(err, members.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now().UTC()
	user := &members.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Active:       true,
		Roles:        []access.Role{access.RoleMitglied, access.RoleAdmin},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, apperr.Validation("Ungültige Angaben für den Admin.", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Created admin user with id %s", user.ID))
	return user, nil
}
