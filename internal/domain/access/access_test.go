//go:build unit
// +build unit

package access

import (
	"net/http"
	"testing"

	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principalFor(roles ...Role) *Principal {
	matrix := DefaultMatrix()
	var perms []Permission
	for _, r := range roles {
		perms = append(perms, matrix[r]...)
	}
	return NewPrincipal("user-1", "user@example.org", roles, perms)
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		p        *Principal
		perm     Permission
		expected bool
	}{
		{"nil principal", nil, PermMembersRead, false},
		{"admin holds everything", principalFor(RoleAdmin), PermRolesManage, true},
		{"member reads directory", principalFor(RoleMitglied), PermMembersRead, true},
		{"member cannot write finance", principalFor(RoleMitglied), PermFinanceWrite, false},
		{"treasurer writes finance", principalFor(RoleKasse), PermFinanceWrite, true},
		{"costume manages measurements", principalFor(RoleKostuem), PermMeasurementsManage, true},
		{"roles combine", principalFor(RoleMitglied, RoleRegie), PermRehearsalsManage, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasPermission(tt.p, tt.perm))
		})
	}
}

func TestResolveAllowedVisibilityScopes(t *testing.T) {
	tests := []struct {
		name     string
		p        *Principal
		expected []VisibilityScope
	}{
		{"nil principal", nil, nil},
		{"member has no finance access", principalFor(RoleMitglied), nil},
		{"treasurer sees finance scope", principalFor(RoleKasse), []VisibilityScope{ScopeFinance}},
		{"board sees both", principalFor(RoleVorstand), []VisibilityScope{ScopeFinance, ScopeBoard}},
		{"admin sees all", principalFor(RoleAdmin), []VisibilityScope{ScopeFinance, ScopeBoard}},
		{
			"board-only permission",
			NewPrincipal("u", "u@example.org", []Role{RoleMitglied}, []Permission{PermFinanceBoard}),
			[]VisibilityScope{ScopeBoard},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scopes := ResolveAllowedVisibilityScopes(tt.p)
			assert.Equal(t, tt.expected, scopes)
			for _, s := range scopes {
				assert.True(t, IsScopeAllowed(tt.p, s))
			}
		})
	}
}

func TestResolveAllowedVisibilityScopes_AdminResultIsACopy(t *testing.T) {
	scopes := ResolveAllowedVisibilityScopes(principalFor(RoleAdmin))
	scopes[0] = "tampered"
	assert.Equal(t, ScopeFinance, AllVisibilityScopes[0])
}

func TestRequire(t *testing.T) {
	err := Require(nil, PermMembersRead)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))

	err = Require(principalFor(RoleMitglied), PermFinanceRead)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	assert.NoError(t, Require(principalFor(RoleKasse), PermFinanceRead))
}

func TestRequireSelfOr(t *testing.T) {
	member := principalFor(RoleMitglied)
	assert.NoError(t, RequireSelfOr(member, member.UserID, PermMeasurementsReadAll))
	assert.Error(t, RequireSelfOr(member, "someone-else", PermMeasurementsReadAll))
	assert.NoError(t, RequireSelfOr(principalFor(RoleKostuem), "someone-else", PermMeasurementsReadAll))
}

func TestDefaultMatrix_OnlyKnownKeys(t *testing.T) {
	for _, row := range DefaultMatrix().Rows() {
		assert.True(t, row.Role.Valid(), "unknown role %s", row.Role)
		assert.True(t, row.Permission.Valid(), "unknown permission %s", row.Permission)
		assert.NotEqual(t, RoleAdmin, row.Role)
	}
}

func TestPrincipal_PermissionList(t *testing.T) {
	p := principalFor(RoleMitglied)
	assert.Equal(t, []Permission{PermMembersRead, PermRehearsalsRead}, p.PermissionList())
	assert.Len(t, principalFor(RoleAdmin).PermissionList(), len(AllPermissions))
}
