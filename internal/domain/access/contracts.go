package access

import (
	"context"
)

// RolePermissionRepository persists the permission matrix.
type RolePermissionRepository interface {
	// ListByRoles returns the distinct permissions granted to any of roles.
	ListByRoles(ctx context.Context, roles []Role) ([]Permission, error)
	ListAll(ctx context.Context) ([]RolePermission, error)
	Grant(ctx context.Context, role Role, perm Permission) error
	Revoke(ctx context.Context, role Role, perm Permission) error
	// ReplaceAll swaps the whole matrix atomically.
	ReplaceAll(ctx context.Context, rows []RolePermission) error
	Count(ctx context.Context) (int64, error)
}

// Service manages the permission matrix.
type Service interface {
	// ResolvePrincipal loads the permissions for a user's roles.
	ResolvePrincipal(ctx context.Context, userID, email string, roles []Role) (*Principal, error)
	Matrix(ctx context.Context, p *Principal) (Matrix, error)
	Grant(ctx context.Context, p *Principal, role Role, perm Permission) error
	Revoke(ctx context.Context, p *Principal, role Role, perm Permission) error
	// Import replaces the matrix. A nil principal is used by the CLI.
	Import(ctx context.Context, p *Principal, m Matrix) error
	// SeedDefaults installs DefaultMatrix when the matrix is empty.
	SeedDefaults(ctx context.Context) error
}
