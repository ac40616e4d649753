//go:build unit
// +build unit

package members

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/stretchr/testify/assert"
)

func validUser() *User {
	return &User{
		ID:           uuid.NewString(),
		Email:        "anna@example.org",
		FirstName:    "Anna",
		LastName:     "Bühne",
		PasswordHash: "$2a$10$hash",
		Active:       true,
		Roles:        []access.Role{access.RoleMitglied},
	}
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr bool
	}{
		{"valid", func(u *User) {}, false},
		{"invalid email", func(u *User) { u.Email = "anna" }, true},
		{"blank first name", func(u *User) { u.FirstName = "   " }, true},
		{"unknown role", func(u *User) { u.Roles = []access.Role{"intendant"} }, true},
		{"missing hash", func(u *User) { u.PasswordHash = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(u)
			err := u.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_Helpers(t *testing.T) {
	u := validUser()
	assert.Equal(t, "Anna Bühne", u.FullName())
	assert.True(t, u.HasRole(access.RoleMitglied))
	assert.False(t, u.HasRole(access.RoleKasse))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "anna@example.org", NormalizeEmail("  Anna@Example.ORG "))
}
