// Package auth defines login sessions: password hashing and signed session tokens.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/members"
)

// ErrInvalidToken is returned for malformed, expired or forged tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the identity facts carried inside a session token.
type Claims struct {
	UserID    string
	Email     string
	Roles     []access.Role
	ExpiresAt time.Time
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *members.User
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(claims Claims) (string, time.Time, error)
	Verify(token string) (*Claims, error)
}

// Service handles login and resolves callers from tokens.
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	// Authenticate verifies the token and loads the current principal. Roles
	// are re-read from the database so revocations take effect immediately.
	Authenticate(ctx context.Context, token string) (*access.Principal, error)
	ChangePassword(ctx context.Context, p *access.Principal, current, next string) error
}
