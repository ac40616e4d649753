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
	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testUser() *members.User {
	return &members.User{
		ID:        "0b6c1c62-5a55-4c1b-9d0e-3c7f4b2a9e11",
		Email:     "anna@example.org",
		FirstName: "Anna",
		LastName:  "Berger",
		Active:    true,
		Roles:     []access.Role{access.RoleMitglied, access.RoleKasse},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, new(MockMemberService), CookieSettings{Name: "portal_session"})

	mockAuthService.On("Login", mock.Anything, "anna@example.org", "Sommernacht-2026").
		Return(&auth.Session{Token: "jwt-token", ExpiresAt: time.Now().Add(time.Hour), User: testUser()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBufferString(`{"email":"anna@example.org","password":"Sommernacht-2026"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jwt-token")
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	mockAuthService.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, new(MockMemberService), CookieSettings{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBufferString(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, new(MockMemberService), CookieSettings{Name: "portal_session"})

	mockAuthService.On("Login", mock.Anything, "anna@example.org", "falsch").
		Return(nil, apperr.Unauthorized("E-Mail oder Passwort falsch."))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBufferString(`{"email":"anna@example.org","password":"falsch"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_Me_ListsPermissions(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewAuthHandler(new(MockAuthService), mockMemberService, CookieSettings{})

	user := testUser()
	principal := access.NewPrincipal(user.ID, user.Email, user.Roles, []access.Permission{access.PermFinanceRead, access.PermMembersRead})
	mockMemberService.On("GetByID", mock.Anything, principal, user.ID).Return(user, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(principalKey, principal)

	handler.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "finance.read")
	assert.Contains(t, w.Body.String(), "Berger")
	mockMemberService.AssertExpectations(t)
}
