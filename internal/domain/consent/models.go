// Package consent models the photo consent a member gives for publication
// of pictures in the Chronik and gallery.
package consent

import (
	"errors"
	"strings"
	"time"

	"github.com/sommertheater/portal/internal/pkg/validators"
)

var ErrNotFound = errors.New("photo consent not found")

// ErrGuardianRequired is returned when a minor submits without a guardian.
var ErrGuardianRequired = errors.New("guardian name required for minors")

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// PhotoConsent is the per-member consent record. There is at most one per user.
type PhotoConsent struct {
	ID           string `validate:"required,uuid4"`
	UserID       string `validate:"required,uuid4"`
	Consents     bool
	Status       Status `validate:"required,oneof=pending approved rejected withdrawn"`
	GuardianName string `validate:"omitempty,max=200"`
	Notes        string `validate:"omitempty,max=2000"`
	ReviewNote   string `validate:"omitempty,max=2000"`
	ReviewedBy   *string
	ReviewedAt   *time.Time
	UpdatedAt    time.Time
}

// Validate for validating PhotoConsent struct
func (c *PhotoConsent) Validate() error {
	return validators.Struct(c)
}

// AllowsPublication reports whether images showing the member may be published.
func (c *PhotoConsent) AllowsPublication() bool {
	return c != nil && c.Consents && c.Status == StatusApproved
}

// Submission is what a member (or their guardian) fills in.
type Submission struct {
	Consents     bool
	GuardianName string `validate:"omitempty,max=200"`
	Notes        string `validate:"omitempty,max=2000"`
}

// Validate checks the submission; minors need a guardian name.
func (s *Submission) Validate(isMinor bool) error {
	if err := validators.Struct(s); err != nil {
		return err
	}
	if isMinor && strings.TrimSpace(s.GuardianName) == "" {
		return ErrGuardianRequired
	}
	return nil
}

// Apply overwrites c with the submission and resets it to pending review.
func (c *PhotoConsent) Apply(s *Submission, now time.Time) {
	c.Consents = s.Consents
	c.GuardianName = strings.TrimSpace(s.GuardianName)
	c.Notes = s.Notes
	c.Status = StatusPending
	c.ReviewNote = ""
	c.ReviewedBy = nil
	c.ReviewedAt = nil
	c.UpdatedAt = now
}
