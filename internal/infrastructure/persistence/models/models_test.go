//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserModel_FromDomain(t *testing.T) {
	user := &members.User{
		ID:        uuid.NewString(),
		Email:     " Anna@Example.org",
		FirstName: "Anna",
		LastName:  "Bühne",
		Roles:     []access.Role{access.RoleMitglied, access.RoleRegie, access.RoleMitglied},
	}

	model := &UserModel{}
	model.FromDomain(user)

	assert.Equal(t, "anna@example.org", model.Email)
	require.Len(t, model.Roles, 2)
	assert.Equal(t, user.ID, model.Roles[0].UserID)

	back := model.ToDomain()
	assert.Equal(t, []access.Role{access.RoleMitglied, access.RoleRegie}, back.Roles)
}

func TestInviteModel_RolesRoundTrip(t *testing.T) {
	invite := &onboarding.Invite{
		ID:    uuid.NewString(),
		Roles: []access.Role{access.RoleKasse, access.RoleVorstand},
	}

	model := &InviteModel{}
	model.FromDomain(invite)
	assert.Equal(t, "kasse,vorstand", model.Roles)

	model.Roles = ""
	assert.Empty(t, model.ToDomain().Roles)
}

func TestShowModel_PremiereDate(t *testing.T) {
	premiere := time.Date(2026, 7, 3, 20, 0, 0, 0, time.UTC)
	show := &shows.Show{ID: uuid.NewString(), Year: 2026, Title: "Der Sturm", PremiereDate: &premiere}

	model := &ShowModel{}
	model.FromDomain(show)
	require.NotNil(t, model.PremiereDate)
	assert.Equal(t, "2026-07-03", *model.PremiereDate)

	back := model.ToDomain()
	require.NotNil(t, back.PremiereDate)
	assert.Equal(t, time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC), *back.PremiereDate)
}

func TestGalleryImageModel_DeduplicatesTags(t *testing.T) {
	userID := uuid.NewString()
	image := &shows.GalleryImage{ID: uuid.NewString(), TaggedUserIDs: []string{userID, userID}}

	model := &GalleryImageModel{}
	model.FromDomain(image)

	require.Len(t, model.Tags, 1)
	assert.Equal(t, []string{userID}, model.ToDomain().TaggedUserIDs)
}

func TestFinanceBudgetModel_ShowKey(t *testing.T) {
	model := &FinanceBudgetModel{}
	model.FromDomain(&finance.Budget{ID: uuid.NewString(), Category: "Technik"})
	assert.Equal(t, "", model.ShowKey)

	showID := uuid.NewString()
	model.FromDomain(&finance.Budget{ID: uuid.NewString(), ShowID: &showID, Category: "Technik"})
	assert.Equal(t, showID, model.ShowKey)
}
