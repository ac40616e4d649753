//go:build unit
// +build unit

package consent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoConsent_AllowsPublication(t *testing.T) {
	tests := []struct {
		name     string
		consent  *PhotoConsent
		expected bool
	}{
		{"nil", nil, false},
		{"approved with consent", &PhotoConsent{Consents: true, Status: StatusApproved}, true},
		{"approved without consent", &PhotoConsent{Consents: false, Status: StatusApproved}, false},
		{"pending with consent", &PhotoConsent{Consents: true, Status: StatusPending}, false},
		{"withdrawn", &PhotoConsent{Consents: true, Status: StatusWithdrawn}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.consent.AllowsPublication())
		})
	}
}

func TestSubmission_Validate(t *testing.T) {
	adult := &Submission{Consents: true}
	require.NoError(t, adult.Validate(false))

	minor := &Submission{Consents: true, GuardianName: "  "}
	assert.ErrorIs(t, minor.Validate(true), ErrGuardianRequired)

	minor.GuardianName = "Petra Muster"
	assert.NoError(t, minor.Validate(true))
}

func TestPhotoConsent_ApplyResetsReview(t *testing.T) {
	reviewer := "reviewer"
	reviewedAt := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	c := &PhotoConsent{Status: StatusApproved, ReviewedBy: &reviewer, ReviewedAt: &reviewedAt, ReviewNote: "ok"}

	now := reviewedAt.Add(24 * time.Hour)
	c.Apply(&Submission{Consents: false, GuardianName: " Eva "}, now)

	assert.Equal(t, StatusPending, c.Status)
	assert.False(t, c.Consents)
	assert.Equal(t, "Eva", c.GuardianName)
	assert.Nil(t, c.ReviewedBy)
	assert.Nil(t, c.ReviewedAt)
	assert.Empty(t, c.ReviewNote)
	assert.Equal(t, now, c.UpdatedAt)
}
