package measurements

import (
	"context"

	"github.com/sommertheater/portal/internal/domain/access"
)

// Repository persists measurements. Upsert is keyed on (user, kind) and
// stores a batch atomically.
type Repository interface {
	Upsert(ctx context.Context, list ...*Measurement) error
	ListByUser(ctx context.Context, userID string) ([]*Measurement, error)
	ListAll(ctx context.Context) ([]*Measurement, error)
	Delete(ctx context.Context, userID string, kind Kind) error
}

type Service interface {
	ListForUser(ctx context.Context, p *access.Principal, userID string) ([]*Measurement, error)
	ListAll(ctx context.Context, p *access.Principal) ([]*Measurement, error)
	Record(ctx context.Context, p *access.Principal, userID string, inputs []Input) ([]*Measurement, error)
	Delete(ctx context.Context, p *access.Principal, userID string, kind Kind) error
}
