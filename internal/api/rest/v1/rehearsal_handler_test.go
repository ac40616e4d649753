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
	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/domain/rehearsals"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func regiePrincipal() *access.Principal {
	return access.NewPrincipal("regie-1", "regie@example.org", []access.Role{access.RoleRegie},
		[]access.Permission{access.PermRehearsalsRead, access.PermRehearsalsManage})
}

func TestRehearsalHandler_GenerateSeries_ReportsSkippedHolidays(t *testing.T) {
	mockTemplateService := new(MockTemplateService)
	handler := NewRehearsalHandler(mockTemplateService, new(MockRehearsalService), new(MockHolidayService), berlin, nil)

	from := time.Date(2026, 3, 30, 0, 0, 0, 0, berlin)
	to := time.Date(2026, 4, 13, 0, 0, 0, 0, berlin)
	created := &rehearsals.Rehearsal{
		ID:       "3f9e2b1a-6c5d-4e7f-8a9b-0c1d2e3f4a5b",
		Title:    "Montagsprobe",
		StartsAt: time.Date(2026, 3, 30, 17, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 3, 30, 19, 30, 0, 0, time.UTC),
		Status:   rehearsals.StatusScheduled,
	}
	mockTemplateService.On("GenerateSeries", mock.Anything, mock.Anything, "tpl-1",
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(from) }),
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(to) })).
		Return(&rehearsals.SeriesResult{
			Created: []*rehearsals.Rehearsal{created},
			Skipped: []rehearsals.SkippedDate{{Date: time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), Reason: "Ostermontag"}},
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/rehearsal-templates/tpl-1/series", bytes.NewBufferString(`{"from":"2026-03-30","to":"2026-04-13"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "tpl-1"}}
	c.Set(principalKey, regiePrincipal())

	handler.GenerateSeries(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Ostermontag")
	assert.Contains(t, w.Body.String(), "2026-04-06")
	mockTemplateService.AssertExpectations(t)
}

func TestRehearsalHandler_GenerateSeries_BadRange(t *testing.T) {
	mockTemplateService := new(MockTemplateService)
	handler := NewRehearsalHandler(mockTemplateService, new(MockRehearsalService), new(MockHolidayService), berlin, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/rehearsal-templates/tpl-1/series", bytes.NewBufferString(`{"from":"2026-03-30"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "tpl-1"}}

	handler.GenerateSeries(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockTemplateService.AssertNotCalled(t, "GenerateSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRehearsalHandler_List_ToIsInclusive(t *testing.T) {
	mockRehearsalService := new(MockRehearsalService)
	handler := NewRehearsalHandler(new(MockTemplateService), mockRehearsalService, new(MockHolidayService), berlin, nil)

	mockRehearsalService.On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(q *rehearsals.Query) bool {
		return q.From.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, berlin)) &&
			q.To.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, berlin)) &&
			q.ShowID == "show-1" && !q.IncludeCancelled
	})).Return([]*rehearsals.Rehearsal{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/rehearsals?from=2026-05-01&to=2026-05-31&showId=show-1", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(principalKey, regiePrincipal())

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRehearsalService.AssertExpectations(t)
}

func TestRehearsalHandler_List_InvalidDate(t *testing.T) {
	mockRehearsalService := new(MockRehearsalService)
	handler := NewRehearsalHandler(new(MockTemplateService), mockRehearsalService, new(MockHolidayService), berlin, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/rehearsals?from=Mai", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRehearsalHandler_PlanPDF(t *testing.T) {
	mockRehearsalService := new(MockRehearsalService)
	handler := NewRehearsalHandler(new(MockTemplateService), mockRehearsalService, new(MockHolidayService), berlin, nil)

	mockRehearsalService.On("PlanPDF", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF-1.3 plan"), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/rehearsals/plan.pdf?showId=show-1", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(principalKey, regiePrincipal())

	handler.PlanPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "probenplan.pdf")
}

func TestRehearsalHandler_ListHolidays(t *testing.T) {
	mockHolidayService := new(MockHolidayService)
	now := func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	handler := NewRehearsalHandler(new(MockTemplateService), new(MockRehearsalService), mockHolidayService, berlin, now)

	mockHolidayService.On("List", mock.Anything, 2026).Return([]holidays.Holiday{
		{Date: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), Name: "Tag der Deutschen Einheit", Source: holidays.SourceBuiltin},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/holidays?year=2026", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListHolidays(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tag der Deutschen Einheit")
	assert.Contains(t, w.Body.String(), "2026-10-03")
}

func TestRehearsalHandler_ListHolidays_OutsidePublicWindow(t *testing.T) {
	mockHolidayService := new(MockHolidayService)
	now := func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	handler := NewRehearsalHandler(new(MockTemplateService), new(MockRehearsalService), mockHolidayService, berlin, now)

	mockHolidayService.On("List", mock.Anything, 2031).Return([]holidays.Holiday{}, nil)

	tests := []struct {
		query    string
		expected int
	}{
		{"year=2031", http.StatusOK},
		{"year=2032", http.StatusBadRequest},
		{"year=2020", http.StatusBadRequest},
		{"year=2200", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/holidays?"+tt.query, nil)

			c, _ := gin.CreateTestContext(w)
			c.Request = req

			handler.ListHolidays(c)

			assert.Equal(t, tt.expected, w.Code)
		})
	}

	mockHolidayService.AssertNumberOfCalls(t, "List", 1)
}
