package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/pkg/clock"

	jwt "github.com/golang-jwt/jwt/v5"
)

const issuer = "sommertheater-portal"

type sessionClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewJWTIssuer returns a TokenIssuer signing HS256 tokens valid for ttl.
func NewJWTIssuer(secret string, ttl time.Duration, clk clock.Clock) (auth.TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &jwtIssuer{secret: []byte(secret), ttl: ttl, clock: clk}, nil
}

func (j *jwtIssuer) Issue(claims auth.Claims) (string, time.Time, error) {
	now := j.clock.Now()
	expiresAt := now.Add(j.ttl)

	roles := make([]string, len(claims.Roles))
	for i, r := range claims.Roles {
		roles[i] = string(r)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: claims.Email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   claims.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *jwtIssuer) Verify(tokenStr string) (*auth.Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, auth.ErrInvalidToken
	}

	c, _ := tok.Claims.(*sessionClaims)
	if c == nil || c.Subject == "" {
		return nil, auth.ErrInvalidToken
	}

	roles := make([]access.Role, len(c.Roles))
	for i, r := range c.Roles {
		roles[i] = access.Role(r)
	}
	return &auth.Claims{
		UserID:    c.Subject,
		Email:     c.Email,
		Roles:     roles,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
