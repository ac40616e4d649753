package access

import (
	"sort"
)

// Role is a club role assigned to a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVorstand Role = "vorstand"
	RoleKasse    Role = "kasse"
	RoleRegie    Role = "regie"
	RoleKostuem  Role = "kostuem"
	RoleMitglied Role = "mitglied"
)

// AllRoles lists every known role.
var AllRoles = []Role{RoleAdmin, RoleVorstand, RoleKasse, RoleRegie, RoleKostuem, RoleMitglied}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Permission is a flat permission key.
type Permission string

const (
	PermMembersRead         Permission = "members.read"
	PermMembersManage       Permission = "members.manage"
	PermOnboardingManage    Permission = "onboarding.manage"
	PermFinanceRead         Permission = "finance.read"
	PermFinanceWrite        Permission = "finance.write"
	PermFinanceApprove      Permission = "finance.approve"
	PermFinanceBoard        Permission = "finance.board"
	PermFinanceExport       Permission = "finance.export"
	PermRehearsalsRead      Permission = "rehearsals.read"
	PermRehearsalsManage    Permission = "rehearsals.manage"
	PermShowsManage         Permission = "shows.manage"
	PermChronikManage       Permission = "chronik.manage"
	PermPhotoConsentReview  Permission = "photo_consent.review"
	PermMeasurementsReadAll Permission = "measurements.read_all"
	PermMeasurementsManage  Permission = "measurements.manage"
	PermDietaryReadAll      Permission = "dietary.read_all"
	PermRolesManage         Permission = "roles.manage"
)

// AllPermissions lists every known permission key.
var AllPermissions = []Permission{
	PermMembersRead, PermMembersManage, PermOnboardingManage,
	PermFinanceRead, PermFinanceWrite, PermFinanceApprove, PermFinanceBoard, PermFinanceExport,
	PermRehearsalsRead, PermRehearsalsManage, PermShowsManage, PermChronikManage,
	PermPhotoConsentReview, PermMeasurementsReadAll, PermMeasurementsManage,
	PermDietaryReadAll, PermRolesManage,
}

// Valid reports whether p is a known permission key.
func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// RolePermission is one row of the permission matrix.
type RolePermission struct {
	Role       Role
	Permission Permission
}

// Matrix maps roles to their granted permissions.
type Matrix map[Role][]Permission

// Rows flattens the matrix into sorted rows.
func (m Matrix) Rows() []RolePermission {
	var rows []RolePermission
	for role, perms := range m {
		for _, perm := range perms {
			rows = append(rows, RolePermission{Role: role, Permission: perm})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Role != rows[j].Role {
			return rows[i].Role < rows[j].Role
		}
		return rows[i].Permission < rows[j].Permission
	})
	return rows
}

// DefaultMatrix is seeded on first migration. Admin is omitted because it
// implicitly holds every permission.
func DefaultMatrix() Matrix {
	return Matrix{
		RoleVorstand: {
			PermMembersRead, PermMembersManage, PermOnboardingManage,
			PermFinanceRead, PermFinanceBoard, PermFinanceApprove, PermFinanceExport,
			PermRehearsalsRead, PermShowsManage, PermChronikManage,
			PermPhotoConsentReview, PermDietaryReadAll,
		},
		RoleKasse: {
			PermMembersRead, PermFinanceRead, PermFinanceWrite, PermFinanceApprove,
			PermFinanceExport, PermRehearsalsRead,
		},
		RoleRegie: {
			PermMembersRead, PermRehearsalsRead, PermRehearsalsManage,
			PermMeasurementsReadAll, PermDietaryReadAll,
		},
		RoleKostuem: {
			PermMembersRead, PermRehearsalsRead, PermMeasurementsReadAll, PermMeasurementsManage,
		},
		RoleMitglied: {
			PermMembersRead, PermRehearsalsRead,
		},
	}
}
