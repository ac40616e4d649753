package members

import (
	"context"

	"github.com/sommertheater/portal/internal/domain/access"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create stores a user with its roles. Returns ErrEmailTaken on duplicates.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, query *UserQuery) ([]*User, error)
	// Update stores the scalar fields of user. Roles are changed via SetRoles.
	Update(ctx context.Context, user *User) error
	SetRoles(ctx context.Context, userID string, roles []access.Role) error
	Count(ctx context.Context) (int64, error)
}

// Service defines the member directory operations.
type Service interface {
	List(ctx context.Context, p *access.Principal, query *UserQuery) ([]*User, error)
	GetByID(ctx context.Context, p *access.Principal, userID string) (*User, error)
	UpdateOwnProfile(ctx context.Context, p *access.Principal, update *ProfileUpdate) (*User, error)
	UpdateRoles(ctx context.Context, p *access.Principal, userID string, roles []access.Role) (*User, error)
	SetActive(ctx context.Context, p *access.Principal, userID string, active bool) (*User, error)
	// CreateAdmin bootstraps an administrator account (CLI only).
	CreateAdmin(ctx context.Context, email, password, firstName, lastName string) (*User, error)
}
