package consent

import (
	"context"

	"github.com/sommertheater/portal/internal/domain/access"
)

// Repository persists photo consents.
type Repository interface {
	Create(ctx context.Context, c *PhotoConsent) error
	GetByUserID(ctx context.Context, userID string) (*PhotoConsent, error)
	Update(ctx context.Context, c *PhotoConsent) error
	ListByStatus(ctx context.Context, status Status) ([]*PhotoConsent, error)
	// ListByUserIDs returns the consents that exist for the given users.
	ListByUserIDs(ctx context.Context, userIDs []string) ([]*PhotoConsent, error)
}

// Service defines the photo consent workflow.
type Service interface {
	GetOwn(ctx context.Context, p *access.Principal) (*PhotoConsent, error)
	Submit(ctx context.Context, p *access.Principal, s *Submission) (*PhotoConsent, error)
	Withdraw(ctx context.Context, p *access.Principal) (*PhotoConsent, error)
	ListPending(ctx context.Context, p *access.Principal) ([]*PhotoConsent, error)
	Review(ctx context.Context, p *access.Principal, userID string, approve bool, note string) (*PhotoConsent, error)
	// PublishableUsers filters userIDs down to those whose consent allows publication.
	PublishableUsers(ctx context.Context, userIDs []string) (map[string]bool, error)
}
