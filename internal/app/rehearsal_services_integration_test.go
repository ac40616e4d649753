//go:build integration
// +build integration

package app

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *TestServices) mondayTemplate(t *testing.T, p *access.Principal) *rehearsals.Template {
	t.Helper()
	tmpl, err := s.Templates.Create(context.Background(), p, &rehearsals.TemplateInput{
		Name:            "Montagsprobe",
		Weekday:         time.Monday,
		StartTime:       "19:00",
		DurationMinutes: 150,
		Location:        "Scheune",
		Active:          true,
	})
	require.NoError(t, err)
	return tmpl
}

func TestTemplateService_GenerateSeriesSkipsHolidays(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, regie := s.CreateMember(t, "regie@example.org", access.RoleRegie)
	tmpl := s.mondayTemplate(t, regie)

	from := time.Date(2026, 3, 30, 0, 0, 0, 0, s.Location)
	to := time.Date(2026, 6, 1, 0, 0, 0, 0, s.Location)

	res, err := s.Templates.GenerateSeries(ctx, regie, tmpl.ID, from, to)
	require.NoError(t, err)
	assert.Len(t, res.Created, 8)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, "2026-04-06", res.Skipped[0].Date.Format(time.DateOnly))
	assert.Equal(t, "Ostermontag", res.Skipped[0].Reason)
	assert.Equal(t, "2026-05-25", res.Skipped[1].Date.Format(time.DateOnly))
	assert.Equal(t, "Pfingstmontag", res.Skipped[1].Reason)

	// 19:00 in Berlin summer time
	first := res.Created[1]
	assert.Equal(t, time.Date(2026, 4, 13, 17, 0, 0, 0, time.UTC), first.StartsAt.UTC())
	assert.Equal(t, 150*time.Minute, first.EndsAt.Sub(first.StartsAt))
	require.NotNil(t, first.TemplateID)
	assert.Equal(t, tmpl.ID, *first.TemplateID)

	assert.Equal(t, 1, s.ICSFetcher.Calls)
	assert.Equal(t, 1, s.JSONFetcher.Calls)

	again, err := s.Templates.GenerateSeries(ctx, regie, tmpl.ID, from, to)
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Len(t, again.Skipped, 10)
	assert.Equal(t, 1, s.ICSFetcher.Calls, "stored holidays are reused")

	_, err = s.Templates.GenerateSeries(ctx, regie, tmpl.ID, to, from)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	_, member := s.CreateMember(t, "mitglied@example.org")
	_, err = s.Templates.GenerateSeries(ctx, member, tmpl.ID, from, to)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
}

func TestRehearsalService_RespondAndAttendance(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, regie := s.CreateMember(t, "regie@example.org", access.RoleRegie)
	_, anna := s.CreateMember(t, "anna@example.org")
	_, ben := s.CreateMember(t, "ben@example.org")

	starts := time.Date(2026, 4, 14, 19, 0, 0, 0, s.Location)
	r, err := s.Rehearsals.Create(ctx, regie, &rehearsals.RehearsalInput{
		Title:    "Stellprobe Akt 1",
		StartsAt: starts,
		EndsAt:   starts.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, rehearsals.StatusScheduled, r.Status)
	assert.Equal(t, time.UTC, r.StartsAt.Location())

	_, err = s.Rehearsals.Respond(ctx, anna, r.ID, rehearsals.ResponseYes, "")
	require.NoError(t, err)
	_, err = s.Rehearsals.Respond(ctx, ben, r.ID, rehearsals.ResponseMaybe, "Spätschicht")
	require.NoError(t, err)
	_, err = s.Rehearsals.Respond(ctx, ben, r.ID, rehearsals.ResponseNo, "")
	require.NoError(t, err)
	_, err = s.Rehearsals.Respond(ctx, ben, r.ID, rehearsals.Response("later"), "")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	_, err = s.Rehearsals.Attendance(ctx, anna, r.ID)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	overview, err := s.Rehearsals.Attendance(ctx, regie, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Yes)
	assert.Equal(t, 1, overview.No)
	assert.Equal(t, 0, overview.Maybe)

	own, err := s.Rehearsals.OwnResponses(ctx, ben, nil)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, rehearsals.ResponseNo, own[0].Response)

	_, err = s.Rehearsals.Cancel(ctx, regie, r.ID)
	require.NoError(t, err)
	_, err = s.Rehearsals.Respond(ctx, anna, r.ID, rehearsals.ResponseYes, "")
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	visible, err := s.Rehearsals.List(ctx, anna, nil)
	require.NoError(t, err)
	assert.Empty(t, visible)
	all, err := s.Rehearsals.List(ctx, anna, &rehearsals.Query{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRehearsalService_PlanPDF(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, regie := s.CreateMember(t, "regie@example.org", access.RoleRegie)
	show := s.createShow(t, 2026, "Der Sturm", false)

	starts := time.Date(2026, 5, 2, 10, 0, 0, 0, s.Location)
	_, err := s.Rehearsals.Create(ctx, regie, &rehearsals.RehearsalInput{
		ShowID:   &show.ID,
		Title:    "Durchlauf",
		StartsAt: starts,
		EndsAt:   starts.Add(3 * time.Hour),
	})
	require.NoError(t, err)

	pdf, err := s.Rehearsals.PlanPDF(ctx, regie, &rehearsals.Query{ShowID: show.ID})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))

	missing := "00000000-0000-4000-8000-000000000000"
	_, err = s.Rehearsals.Create(ctx, regie, &rehearsals.RehearsalInput{
		ShowID:   &missing,
		Title:    "Geisterprobe",
		StartsAt: starts,
		EndsAt:   starts.Add(time.Hour),
	})
	assert.Error(t, err)
}
