//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/domain/shows"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, services Services) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	err := SetupRoutes(r, services, RouteSettings{
		Cookie:       CookieSettings{Name: "portal_session"},
		Organization: "Sommertheater",
	})
	require.NoError(t, err)
	return r
}

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockChronikService := new(MockChronikService)
	mockHolidayService := new(MockHolidayService)

	mockAuthService.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, auth.ErrInvalidToken)
	mockChronikService.On("Chronik", mock.Anything).Return([]shows.ChronikYear{}, nil)
	mockHolidayService.On("List", mock.Anything, mock.Anything).Return([]holidays.Holiday{}, nil)

	r := newTestRouter(t, Services{
		Auth:     mockAuthService,
		Chronik:  mockChronikService,
		Holidays: mockHolidayService,
	})

	tests := []struct {
		method string
		url    string
	}{
		{"POST", "/api/v1/auth/login"},
		{"GET", "/api/v1/chronik"},
		{"GET", "/api/v1/holidays?year=2026"},
		{"GET", "/chronik"},
		{"GET", "/healthz"},
		{"GET", "/api/v1/members"},
		{"POST", "/api/v1/invites"},
		{"POST", "/api/v1/rehearsal-templates/abc/series"},
		{"GET", "/api/v1/rehearsals/plan.pdf"},
		{"GET", "/api/v1/finance/entries/export.csv"},
		{"POST", "/api/v1/finance/entries/abc/approve"},
		{"GET", "/api/v1/shows/abc/poster.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, strings.NewReader("{}"))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Just verify route exists (status != 404)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}
}

func TestSetupRoutes_SecuredRoutesNeedSession(t *testing.T) {
	r := newTestRouter(t, Services{Auth: new(MockAuthService)})

	for _, url := range []string{"/api/v1/me", "/api/v1/members", "/api/v1/finance/summary", "/api/v1/access/matrix"} {
		req, _ := http.NewRequest(http.MethodGet, url, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, url)
	}
}
