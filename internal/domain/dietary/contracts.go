package dietary

import (
	"context"

	"github.com/sommertheater/portal/internal/domain/access"
)

// Repository persists dietary restrictions.
type Repository interface {
	Create(ctx context.Context, r *Restriction) error
	GetByID(ctx context.Context, id string) (*Restriction, error)
	ListByUser(ctx context.Context, userID string) ([]*Restriction, error)
	ListAll(ctx context.Context) ([]*Restriction, error)
	Update(ctx context.Context, r *Restriction) error
	Delete(ctx context.Context, id string) error
}

// Service manages a member's own restrictions and the catering overview.
type Service interface {
	ListOwn(ctx context.Context, p *access.Principal) ([]*Restriction, error)
	Create(ctx context.Context, p *access.Principal, in *Input) (*Restriction, error)
	Update(ctx context.Context, p *access.Principal, id string, in *Input) (*Restriction, error)
	Delete(ctx context.Context, p *access.Principal, id string) error
	CateringOverview(ctx context.Context, p *access.Principal) ([]CateringItem, error)
}
