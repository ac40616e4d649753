package access

import (
	"github.com/sommertheater/portal/internal/pkg/apperr"
)

// Principal is the authenticated caller together with its resolved permissions.
type Principal struct {
	UserID      string
	Email       string
	Roles       []Role
	Permissions map[Permission]struct{}
}

// NewPrincipal builds a principal from roles and the union of their permissions.
func NewPrincipal(userID, email string, roles []Role, perms []Permission) *Principal {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return &Principal{UserID: userID, Email: email, Roles: roles, Permissions: set}
}

// HasRole reports whether the principal carries role r.
func (p *Principal) HasRole(r Role) bool {
	if p == nil {
		return false
	}
	for _, have := range p.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal is an administrator.
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// PermissionList returns the effective permissions in declaration order.
func (p *Principal) PermissionList() []Permission {
	out := make([]Permission, 0, len(AllPermissions))
	for _, perm := range AllPermissions {
		if HasPermission(p, perm) {
			out = append(out, perm)
		}
	}
	return out
}

// HasPermission reports whether p may act with permission key perm.
func HasPermission(p *Principal, perm Permission) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	_, ok := p.Permissions[perm]
	return ok
}

// Require returns a forbidden error unless p holds perm.
func Require(p *Principal, perm Permission) error {
	if p == nil {
		return apperr.Unauthorized("Bitte melde dich an.")
	}
	if !HasPermission(p, perm) {
		return apperr.Forbidden("Dafür fehlt dir die Berechtigung.").
			WithDetails(map[string]any{"permission": string(perm)})
	}
	return nil
}

// RequireSelfOr allows the action when p is the owner of the resource or holds perm.
func RequireSelfOr(p *Principal, ownerID string, perm Permission) error {
	if p != nil && p.UserID == ownerID {
		return nil
	}
	return Require(p, perm)
}

// SystemPrincipal acts with full rights on behalf of the admin CLI.
func SystemPrincipal() *Principal {
	return NewPrincipal("", "system", []Role{RoleAdmin}, nil)
}
