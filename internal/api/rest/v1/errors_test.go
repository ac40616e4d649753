//go:build unit
// +build unit

package v1

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
)

func TestToErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error", apperr.Gone("INVITE_EXPIRED", "Diese Einladung ist abgelaufen."), http.StatusGone, "INVITE_EXPIRED"},
		{"wrapped app error", fmt.Errorf("redeem: %w", apperr.Forbidden("Keine Berechtigung.")), http.StatusForbidden, "FORBIDDEN"},
		{"wrapped sentinel", fmt.Errorf("failed to fetch entry: %w", finance.ErrEntryNotFound), http.StatusNotFound, "ENTRY_NOT_FOUND"},
		{"conflict sentinel", onboarding.ErrInviteAlreadyRedeemed, http.StatusConflict, "INVITE_REDEEMED"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := toErrorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestToErrorResponse_HidesInternalCause(t *testing.T) {
	_, body := toErrorResponse(errors.New("pq: password authentication failed"))
	assert.Equal(t, "Interner Fehler.", body.Message)
	assert.Nil(t, body.Details)
}
