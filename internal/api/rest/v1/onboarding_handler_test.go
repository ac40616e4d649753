//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const redeemBody = `{
	"email": "lena@example.org",
	"password": "Sommernacht-2026",
	"first_name": "Lena",
	"last_name": "Vogt",
	"birth_date": "2010-07-14",
	"emergency_contact_name": "Petra Vogt",
	"emergency_contact_phone": "0171 555 1234",
	"dietary": [{"label": "Erdnüsse", "severity": "severe_allergy"}],
	"photo_consent": true,
	"guardian_name": "Petra Vogt"
}`

func TestOnboardingHandler_RedeemInvite_Success(t *testing.T) {
	mockOnboardingService := new(MockOnboardingService)
	handler := NewOnboardingHandler(mockOnboardingService, clock.System())

	user := testUser()
	mockOnboardingService.On("Redeem", mock.Anything, "tok-abc", mock.MatchedBy(func(req *onboarding.RedeemRequest) bool {
		return req.Email == "lena@example.org" &&
			req.BirthDate.Equal(time.Date(2010, 7, 14, 0, 0, 0, 0, time.UTC)) &&
			len(req.Dietary) == 1 && req.Dietary[0].Label == "Erdnüsse" &&
			req.PhotoConsent && req.GuardianName == "Petra Vogt"
	})).Return(user, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/onboarding/invites/tok-abc/redeem", bytes.NewBufferString(redeemBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: "tok-abc"}}

	handler.RedeemInvite(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
	mockOnboardingService.AssertExpectations(t)
}

func TestOnboardingHandler_RedeemInvite_BadBirthDate(t *testing.T) {
	mockOnboardingService := new(MockOnboardingService)
	handler := NewOnboardingHandler(mockOnboardingService, clock.System())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/onboarding/invites/tok-abc/redeem", bytes.NewBufferString(`{"email":"lena@example.org","birth_date":"14.07.2010"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: "tok-abc"}}

	handler.RedeemInvite(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockOnboardingService.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboardingHandler_RedeemInvite_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"expired", apperr.Gone("INVITE_EXPIRED", "Diese Einladung ist abgelaufen."), http.StatusGone},
		{"redeemed concurrently", onboarding.ErrInviteAlreadyRedeemed, http.StatusConflict},
		{"unknown token", onboarding.ErrInviteNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOnboardingService := new(MockOnboardingService)
			handler := NewOnboardingHandler(mockOnboardingService, clock.System())
			mockOnboardingService.On("Redeem", mock.Anything, "tok-abc", mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/onboarding/invites/tok-abc/redeem", bytes.NewBufferString(redeemBody))
			req.Header.Set("Content-Type", "application/json")

			c, _ := gin.CreateTestContext(w)
			c.Request = req
			c.Params = gin.Params{{Key: "token", Value: "tok-abc"}}

			handler.RedeemInvite(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestOnboardingHandler_CreateInvite_ReturnsTokenOnce(t *testing.T) {
	mockOnboardingService := new(MockOnboardingService)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	handler := NewOnboardingHandler(mockOnboardingService, clock.NewManualClock(now))

	principal := access.NewPrincipal("admin-1", "vorstand@example.org", []access.Role{access.RoleVorstand}, []access.Permission{access.PermOnboardingManage})
	invite := &onboarding.Invite{
		ID:        "7d1f3a0e-2c4b-4f7e-8a9d-1b2c3d4e5f60",
		Label:     "Neue Technik",
		Roles:     []access.Role{access.RoleMitglied},
		ExpiresAt: now.Add(72 * time.Hour),
		CreatedAt: now,
	}
	mockOnboardingService.On("CreateInvite", mock.Anything, principal, mock.Anything).
		Return(&onboarding.CreatedInvite{Invite: invite, Token: "raw-token", Link: "https://portal.example.org/onboarding/raw-token"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/invites", bytes.NewBufferString(`{"label":"Neue Technik","expires_in_hours":72}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(principalKey, principal)

	handler.CreateInvite(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "raw-token")
	assert.Contains(t, w.Body.String(), `"status":"valid"`)
	mockOnboardingService.AssertExpectations(t)
}
