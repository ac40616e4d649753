//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthTestRouter(authService *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthRequired(authService, "portal_session"), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, principalFrom(ctx).UserID)
	})
	return r
}

func TestAuthRequired_MissingToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	r := newAuthTestRouter(mockAuthService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	mockAuthService.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestAuthRequired_BearerToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	principal := access.NewPrincipal("user-1", "anna@example.org", []access.Role{access.RoleMitglied}, nil)
	mockAuthService.On("Authenticate", mock.Anything, "tok-123").Return(principal, nil)
	r := newAuthTestRouter(mockAuthService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
	mockAuthService.AssertExpectations(t)
}

func TestAuthRequired_Cookie(t *testing.T) {
	mockAuthService := new(MockAuthService)
	principal := access.NewPrincipal("user-2", "ben@example.org", []access.Role{access.RoleKasse}, nil)
	mockAuthService.On("Authenticate", mock.Anything, "cookie-tok").Return(principal, nil)
	r := newAuthTestRouter(mockAuthService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "cookie-tok"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-2", w.Body.String())
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("Authenticate", mock.Anything, "expired").
		Return(nil, apperr.Unauthorized("Deine Sitzung ist abgelaufen."))
	r := newAuthTestRouter(mockAuthService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer expired")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "abgelaufen")
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken(""))
}
