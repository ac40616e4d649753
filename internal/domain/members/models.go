package members

import (
	"errors"
	"strings"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/pkg/validators"
)

// ErrNotFound is returned by repositories when no user matches.
var ErrNotFound = errors.New("user not found")

// ErrEmailTaken is returned when the email address is already registered.
var ErrEmailTaken = errors.New("email already registered")

// User is a member account.
type User struct {
	ID           string        `validate:"required,uuid4"`
	Email        string        `validate:"required,email,max=255"`
	FirstName    string        `validate:"required,notblank,max=100"`
	LastName     string        `validate:"required,notblank,max=100"`
	Phone        string        `validate:"omitempty,max=50"`
	PasswordHash string        `validate:"required"`
	Active       bool
	Roles        []access.Role `validate:"dive,oneof=admin vorstand kasse regie kostuem mitglied"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validators.Struct(u)
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole reports whether u carries role r.
func (u *User) HasRole(r access.Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserQuery filters the member directory.
type UserQuery struct {
	Search          string
	Role            access.Role
	IncludeInactive bool
	Limit           int `validate:"omitempty,min=1,max=500"`
	Offset          int `validate:"omitempty,min=0"`
}

// NewUserQuery returns a query with default paging.
func NewUserQuery() *UserQuery {
	return &UserQuery{Limit: 100}
}

// Validate for validating UserQuery struct
func (q *UserQuery) Validate() error {
	return validators.Struct(q)
}

// ProfileUpdate carries the contact fields a member may change on their own.
type ProfileUpdate struct {
	FirstName string `validate:"required,notblank,max=100"`
	LastName  string `validate:"required,notblank,max=100"`
	Phone     string `validate:"omitempty,max=50"`
}

// Validate for validating ProfileUpdate struct
func (p *ProfileUpdate) Validate() error {
	return validators.Struct(p)
}
