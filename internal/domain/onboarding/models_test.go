//go:build unit
// +build unit

package onboarding

import (
	"testing"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/stretchr/testify/assert"
)

func TestInvite_Status(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		invite   Invite
		expected InviteStatus
	}{
		{"valid", Invite{ExpiresAt: future}, InviteStatusValid},
		{"expired", Invite{ExpiresAt: past}, InviteStatusExpired},
		{"expires exactly now", Invite{ExpiresAt: now}, InviteStatusExpired},
		{"redeemed", Invite{ExpiresAt: future, RedeemedAt: &past}, InviteStatusRedeemed},
		{"redeemed and expired", Invite{ExpiresAt: past, RedeemedAt: &past}, InviteStatusRedeemed},
		{"revoked", Invite{ExpiresAt: future, RedeemedAt: &past, RevokedAt: &past}, InviteStatusRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.invite.Status(now))
		})
	}
}

func TestInvite_RolesWithMember(t *testing.T) {
	i := &Invite{Roles: []access.Role{access.RoleRegie, access.RoleMitglied}}
	assert.Equal(t, []access.Role{access.RoleMitglied, access.RoleRegie}, i.RolesWithMember())

	empty := &Invite{}
	assert.Equal(t, []access.Role{access.RoleMitglied}, empty.RolesWithMember())
}

func TestIsMinorAt(t *testing.T) {
	birth := time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsMinorAt(birth, time.Date(2026, 6, 14, 23, 0, 0, 0, time.UTC)))
	assert.False(t, IsMinorAt(birth, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsMinorAt(birth, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRedeemRequest_Validate(t *testing.T) {
	req := &RedeemRequest{
		Email:                 "neu@example.org",
		Password:              "geheim-genug",
		FirstName:             "Nora",
		LastName:              "Neu",
		BirthDate:             time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		EmergencyContactName:  "Max Neu",
		EmergencyContactPhone: "0151 000000",
	}
	assert.NoError(t, req.Validate())

	req.Password = "kurz"
	assert.Error(t, req.Validate())
}
