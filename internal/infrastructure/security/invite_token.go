package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/sommertheater/portal/internal/domain/onboarding"
)

const inviteTokenBytes = 32

type inviteTokenGenerator struct{}

// NewInviteTokenGenerator returns a generator for URL-safe random invite
// tokens. Only their SHA-256 hex digest is meant to be stored.
func NewInviteTokenGenerator() onboarding.TokenGenerator {
	return inviteTokenGenerator{}
}

func (g inviteTokenGenerator) Generate() (string, string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	return token, g.Hash(token), nil
}

func (inviteTokenGenerator) Hash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
