package onboarding

import (
	"context"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/members"
)

// InviteRepository persists invites.
type InviteRepository interface {
	Create(ctx context.Context, invite *Invite) error
	GetByID(ctx context.Context, id string) (*Invite, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*Invite, error)
	List(ctx context.Context, includeClosed bool) ([]*Invite, error)
	Revoke(ctx context.Context, id string, at time.Time) error
	// MarkRedeemed sets redeemed_at/redeemed_by only if the invite is still
	// open at the given time. Otherwise it returns ErrInviteAlreadyRedeemed,
	// ErrInviteRevoked or ErrInviteExpired.
	MarkRedeemed(ctx context.Context, id, userID string, at time.Time) error
}

// ProfileRepository persists onboarding profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
}

// Repositories are the repositories bound to one transaction.
type Repositories struct {
	Users    members.UserRepository
	Invites  InviteRepository
	Profiles ProfileRepository
	Dietary  dietary.Repository
	Consents consent.Repository
}

// UnitOfWork runs fn inside a single database transaction. A returned error
// rolls back every write made through repos.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

// TokenGenerator creates raw invite tokens and their storage hash.
type TokenGenerator interface {
	Generate() (token, hash string, err error)
	Hash(token string) string
}

type Service interface {
	CreateInvite(ctx context.Context, p *access.Principal, req *CreateInviteRequest) (*CreatedInvite, error)
	ListInvites(ctx context.Context, p *access.Principal, includeClosed bool) ([]*Invite, error)
	RevokeInvite(ctx context.Context, p *access.Principal, id string) error
	Inspect(ctx context.Context, token string) (*InviteInfo, error)
	Redeem(ctx context.Context, token string, req *RedeemRequest) (*members.User, error)
	GetProfile(ctx context.Context, p *access.Principal, userID string) (*Profile, error)
}
