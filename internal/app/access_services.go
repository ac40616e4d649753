package app

import (
	"context"
	"fmt"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

// accessService implements the access.Service interface
type accessService struct {
	repo   access.RolePermissionRepository
	logger logger.Logger
}

// NewAccessService creates a new instance of access.Service
func NewAccessService(repo access.RolePermissionRepository, logger logger.Logger) (access.Service, error) {
	return &accessService{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *accessService) ResolvePrincipal(ctx context.Context, userID, email string, roles []access.Role) (*access.Principal, error) {
	perms, err := s.repo.ListByRoles(ctx, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}
	return access.NewPrincipal(userID, email, roles, perms), nil
}

func (s *accessService) Matrix(ctx context.Context, p *access.Principal) (access.Matrix, error) {
	if err := access.Require(p, access.PermRolesManage); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	m := make(access.Matrix)
	for _, row := range rows {
		m[row.Role] = append(m[row.Role], row.Permission)
	}
	return m, nil
}

func (s *accessService) Grant(ctx context.Context, p *access.Principal, role access.Role, perm access.Permission) error {
	if err := s.checkChange(p, role, perm); err != nil {
		return err
	}
	if err := s.repo.Grant(ctx, role, perm); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Granted %s to role %s", perm, role))
	return nil
}

func (s *accessService) Revoke(ctx context.Context, p *access.Principal, role access.Role, perm access.Permission) error {
	if err := s.checkChange(p, role, perm); err != nil {
		return err
	}
	if err := s.repo.Revoke(ctx, role, perm); err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Revoked %s from role %s", perm, role))
	return nil
}

func (s *accessService) checkChange(p *access.Principal, role access.Role, perm access.Permission) error {
	if err := access.Require(p, access.PermRolesManage); err != nil {
		return err
	}
	if !role.Valid() || role == access.RoleAdmin {
		return apperr.Validation("Unbekannte oder nicht änderbare Rolle.", nil)
	}
	if !perm.Valid() {
		return apperr.Validation("Unbekannte Berechtigung.", nil)
	}
	return nil
}

func (s *accessService) Import(ctx context.Context, p *access.Principal, m access.Matrix) error {
	if p != nil {
		if err := access.Require(p, access.PermRolesManage); err != nil {
			return err
		}
	}
	rows := m.Rows()
	for _, row := range rows {
		if row.Role == access.RoleAdmin || !row.Role.Valid() || !row.Permission.Valid() {
			return apperr.Validation(fmt.Sprintf("Ungültiger Eintrag %s/%s.", row.Role, row.Permission), nil)
		}
	}
	if err := s.repo.ReplaceAll(ctx, rows); err != nil {
		return fmt.Errorf("failed to import permission matrix: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Imported permission matrix with %d entries", len(rows)))
	return nil
}

func (s *accessService) SeedDefaults(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count role permissions: %w", err)
	}
	if n > 0 {
		return nil
	}
	if err := s.repo.ReplaceAll(ctx, access.DefaultMatrix().Rows()); err != nil {
		return fmt.Errorf("failed to seed permission matrix: %w", err)
	}
	s.logger.Info("Seeded default permission matrix")
	return nil
}
