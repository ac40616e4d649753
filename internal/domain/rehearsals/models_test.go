//go:build unit
// +build unit

package rehearsals

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate() *Template {
	return &Template{
		ID:              uuid.NewString(),
		Name:            "Ensembleprobe",
		Weekday:         time.Tuesday,
		StartTime:       "19:30",
		DurationMinutes: 150,
		Location:        "Scheune",
		Active:          true,
	}
}

func TestTemplate_Validate(t *testing.T) {
	tmpl := testTemplate()
	require.NoError(t, tmpl.Validate())

	tmpl.StartTime = "25:00"
	assert.Error(t, tmpl.Validate())
}

func TestTemplate_Instantiate(t *testing.T) {
	tmpl := testTemplate()
	date := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	r, err := tmpl.Instantiate(date, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 6, 2, 19, 30, 0, 0, time.UTC), r.StartsAt)
	assert.Equal(t, time.Date(2026, 6, 2, 22, 0, 0, 0, time.UTC), r.EndsAt)
	assert.Equal(t, StatusScheduled, r.Status)
	assert.Equal(t, "Ensembleprobe", r.Title)
	require.NotNil(t, r.TemplateID)
	assert.Equal(t, tmpl.ID, *r.TemplateID)
}

func TestTemplate_SeriesDates(t *testing.T) {
	tmpl := testTemplate()
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) // Monday
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	dates, err := tmpl.SeriesDates(from, to, time.UTC)
	require.NoError(t, err)
	require.Len(t, dates, 5)
	assert.Equal(t, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), dates[4])
	for _, d := range dates {
		assert.Equal(t, time.Tuesday, d.Weekday())
	}
}

func TestTemplate_SeriesDates_InvalidRange(t *testing.T) {
	tmpl := testTemplate()
	from := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := tmpl.SeriesDates(from, from.AddDate(0, 0, -1), time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = tmpl.SeriesDates(from, from.AddDate(2, 0, 0), time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNewAttendanceOverview(t *testing.T) {
	o := NewAttendanceOverview(&Rehearsal{}, []*Attendance{
		{Response: ResponseYes},
		{Response: ResponseYes},
		{Response: ResponseNo},
		{Response: ResponseMaybe},
	})
	assert.Equal(t, 2, o.Yes)
	assert.Equal(t, 1, o.No)
	assert.Equal(t, 1, o.Maybe)
}
