//go:build unit
// +build unit

package security

import (
	"strings"
	"testing"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/pkg/clock"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestBcryptHasher(t *testing.T) {
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := hasher.Hash("geheimes-passwort")
	require.NoError(t, err)
	assert.NotEqual(t, "geheimes-passwort", hash)

	assert.NoError(t, hasher.Compare(hash, "geheimes-passwort"))
	assert.Error(t, hasher.Compare(hash, "falsch"))

	_, err = NewBcryptHasher(99)
	assert.Error(t, err)
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	clk := clock.NewManualClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	issuer, err := NewJWTIssuer(testSecret, time.Hour, clk)
	require.NoError(t, err)

	token, expiresAt, err := issuer.Issue(auth.Claims{
		UserID: "2b0c5a52-6a6b-4b8e-9a55-8c1f4b0c9d11",
		Email:  "anna@example.org",
		Roles:  []access.Role{access.RoleMitglied, access.RoleKasse},
	})
	require.NoError(t, err)
	assert.Equal(t, clk.Now().Add(time.Hour), expiresAt)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "2b0c5a52-6a6b-4b8e-9a55-8c1f4b0c9d11", claims.UserID)
	assert.Equal(t, "anna@example.org", claims.Email)
	assert.Equal(t, []access.Role{access.RoleMitglied, access.RoleKasse}, claims.Roles)
}

func TestJWTIssuer_Expired(t *testing.T) {
	clk := clock.NewManualClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	issuer, err := NewJWTIssuer(testSecret, time.Hour, clk)
	require.NoError(t, err)

	token, _, err := issuer.Issue(auth.Claims{UserID: "user"})
	require.NoError(t, err)

	clk.Add(2 * time.Hour)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTIssuer_RejectsForeignSignatures(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, time.Hour, nil)
	require.NoError(t, err)

	other, err := NewJWTIssuer("another-secret-of-enough-length", time.Hour, nil)
	require.NoError(t, err)
	token, _, err := other.Issue(auth.Claims{UserID: "user"})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(unsigned)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestInviteTokenGenerator(t *testing.T) {
	gen := NewInviteTokenGenerator()

	token, hash, err := gen.Generate()
	require.NoError(t, err)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, gen.Hash(token))
	assert.False(t, strings.ContainsAny(token, "+/="))

	other, _, err := gen.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
