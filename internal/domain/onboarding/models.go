// Package onboarding covers single-use invite links and their redemption
// into member accounts.
package onboarding

import (
	"errors"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/pkg/validators"
)

var (
	ErrInviteNotFound = errors.New("invite not found")
	// ErrInviteAlreadyRedeemed is returned when the conditional redeem update
	// affected no row.
	ErrInviteAlreadyRedeemed = errors.New("invite already redeemed")
	ErrInviteRevoked         = errors.New("invite revoked")
	ErrInviteExpired         = errors.New("invite expired")
	ErrProfileNotFound       = errors.New("onboarding profile not found")
)

// MinorAge is the age of majority.
const MinorAge = 18

type InviteStatus string

const (
	InviteStatusValid    InviteStatus = "valid"
	InviteStatusExpired  InviteStatus = "expired"
	InviteStatusRedeemed InviteStatus = "redeemed"
	InviteStatusRevoked  InviteStatus = "revoked"
)

// Invite is a single-use onboarding link. Only the SHA-256 hash of the raw
// token is stored.
type Invite struct {
	ID         string        `validate:"required,uuid4"`
	TokenHash  string        `validate:"required,len=64,hexadecimal"`
	Label      string        `validate:"omitempty,max=200"`
	Email      string        `validate:"omitempty,email,max=255"`
	Roles      []access.Role `validate:"dive,oneof=admin vorstand kasse regie kostuem mitglied"`
	ExpiresAt  time.Time     `validate:"required"`
	CreatedBy  string        `validate:"omitempty,uuid4"`
	CreatedAt  time.Time
	RedeemedAt *time.Time
	RedeemedBy *string
	RevokedAt  *time.Time
}

// Validate for validating Invite struct
func (i *Invite) Validate() error {
	return validators.Struct(i)
}

// Status evaluates the invite at now. Revocation wins over redemption, which
// wins over expiry.
func (i *Invite) Status(now time.Time) InviteStatus {
	switch {
	case i.RevokedAt != nil:
		return InviteStatusRevoked
	case i.RedeemedAt != nil:
		return InviteStatusRedeemed
	case !now.Before(i.ExpiresAt):
		return InviteStatusExpired
	}
	return InviteStatusValid
}

// RolesWithMember returns the invite roles plus mitglied, without duplicates.
func (i *Invite) RolesWithMember() []access.Role {
	out := []access.Role{access.RoleMitglied}
	for _, r := range i.Roles {
		if r != access.RoleMitglied {
			out = append(out, r)
		}
	}
	return out
}

// CreateInviteRequest describes a new invite.
type CreateInviteRequest struct {
	Label     string        `validate:"omitempty,max=200"`
	Email     string        `validate:"omitempty,email,max=255"`
	Roles     []access.Role `validate:"dive,oneof=vorstand kasse regie kostuem mitglied"`
	ExpiresIn time.Duration `validate:"omitempty,min=1h"`
}

// Validate for validating CreateInviteRequest struct
func (r *CreateInviteRequest) Validate() error {
	return validators.Struct(r)
}

// CreatedInvite is returned once on creation; the raw token is never stored.
type CreatedInvite struct {
	Invite *Invite
	Token  string
	Link   string
}

// InviteInfo is the public view of an invite looked up by token.
type InviteInfo struct {
	Status    InviteStatus
	Label     string
	Email     string
	ExpiresAt time.Time
}

// Profile holds what a new member submitted during onboarding.
type Profile struct {
	UserID                string    `validate:"required,uuid4"`
	BirthDate             time.Time `validate:"required"`
	Street                string    `validate:"omitempty,max=200"`
	PostalCode            string    `validate:"omitempty,max=20"`
	City                  string    `validate:"omitempty,max=100"`
	EmergencyContactName  string    `validate:"omitempty,max=200"`
	EmergencyContactPhone string    `validate:"omitempty,max=50"`
	Experience            string    `validate:"omitempty,max=4000"`
	Interests             string    `validate:"omitempty,max=4000"`
	IsMinor               bool
	CreatedAt             time.Time
}

// Validate for validating Profile struct
func (p *Profile) Validate() error {
	return validators.Struct(p)
}

// IsMinorAt reports whether someone born on birthDate is under MinorAge at t.
func IsMinorAt(birthDate, t time.Time) bool {
	y, m, d := birthDate.Date()
	loc := t.Location()
	adulthood := time.Date(y+MinorAge, m, d, 0, 0, 0, 0, loc)
	ty, tm, td := t.Date()
	today := time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	return today.Before(adulthood)
}

// RedeemRequest is the onboarding form submission.
type RedeemRequest struct {
	Email                 string          `validate:"required,email,max=255"`
	Password              string          `validate:"required,min=10,max=72"`
	FirstName             string          `validate:"required,notblank,max=100"`
	LastName              string          `validate:"required,notblank,max=100"`
	Phone                 string          `validate:"omitempty,max=50"`
	BirthDate             time.Time       `validate:"required"`
	Street                string          `validate:"omitempty,max=200"`
	PostalCode            string          `validate:"omitempty,max=20"`
	City                  string          `validate:"omitempty,max=100"`
	EmergencyContactName  string          `validate:"required,notblank,max=200"`
	EmergencyContactPhone string          `validate:"required,notblank,max=50"`
	Experience            string          `validate:"omitempty,max=4000"`
	Interests             string          `validate:"omitempty,max=4000"`
	Dietary               []dietary.Input `validate:"max=30,dive"`
	PhotoConsent          bool
	GuardianName          string `validate:"omitempty,max=200"`
}

// Validate for validating RedeemRequest struct
func (r *RedeemRequest) Validate() error {
	return validators.Struct(r)
}
