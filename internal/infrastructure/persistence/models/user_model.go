package models

import (
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/members"
)

// UserModel is the GORM database model for member accounts
type UserModel struct {
	ID           string          `gorm:"primaryKey;type:varchar(36)"`
	Email        string          `gorm:"not null;uniqueIndex;type:varchar(255)"`
	FirstName    string          `gorm:"not null;type:varchar(100)"`
	LastName     string          `gorm:"not null;type:varchar(100)"`
	Phone        string          `gorm:"type:varchar(50)"`
	PasswordHash string          `gorm:"not null;type:varchar(100)"`
	Active       bool            `gorm:"not null;default:true"`
	Roles        []UserRoleModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRoleModel is the join row between users and roles
type UserRoleModel struct {
	UserID string `gorm:"primaryKey;type:varchar(36)"`
	Role   string `gorm:"primaryKey;type:varchar(20)"`
}

// TableName specifies the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_roles"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *members.User {
	roles := make([]access.Role, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, access.Role(r.Role))
	}
	return &members.User{
		ID:           m.ID,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Active:       m.Active,
		Roles:        roles,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *members.User) {
	m.ID = u.ID
	m.Email = members.NormalizeEmail(u.Email)
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.Active = u.Active
	m.Roles = RoleRows(u.ID, u.Roles)
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

// RoleRows builds the join rows for a user's roles.
func RoleRows(userID string, roles []access.Role) []UserRoleModel {
	rows := make([]UserRoleModel, 0, len(roles))
	seen := make(map[access.Role]bool, len(roles))
	for _, r := range roles {
		if seen[r] {
			continue
		}
		seen[r] = true
		rows = append(rows, UserRoleModel{UserID: userID, Role: string(r)})
	}
	return rows
}

// RolePermissionModel is one cell of the permission matrix
type RolePermissionModel struct {
	Role       string `gorm:"primaryKey;type:varchar(20)"`
	Permission string `gorm:"primaryKey;type:varchar(50)"`
}

// TableName specifies the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// ToDomain converts GORM model to domain entity
func (m *RolePermissionModel) ToDomain() access.RolePermission {
	return access.RolePermission{Role: access.Role(m.Role), Permission: access.Permission(m.Permission)}
}
