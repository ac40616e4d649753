//go:build integration
// +build integration

package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/config"
	"github.com/sommertheater/portal/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayService_SyncPrefersFirstSource(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, regie := s.CreateMember(t, "regie@example.org", access.RoleRegie)

	s.ICSFetcher.Err = nil
	s.ICSFetcher.Holidays = []holidays.Holiday{
		{Date: time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC), Name: "Reformationstag", Source: holidays.SourceICS},
	}

	res, err := s.Holidays.Sync(ctx, regie, 2026)
	require.NoError(t, err)
	assert.Equal(t, holidays.SourceICS, res.Source)
	assert.Equal(t, 0, s.JSONFetcher.Calls)

	list, err := s.Holidays.List(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Reformationstag", list[0].Name)
	assert.Equal(t, "DE", list[0].Region)
}

func TestHolidayService_FallsBackToBuiltin(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	list, err := s.Holidays.List(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, list, 9)
	assert.Equal(t, holidays.SourceBuiltin, list[0].Source)
	assert.Equal(t, 1, s.ICSFetcher.Calls)
	assert.Equal(t, 1, s.JSONFetcher.Calls)

	days, err := s.Holidays.HolidaysBetween(ctx,
		time.Date(2026, 4, 1, 0, 0, 0, 0, s.Location),
		time.Date(2026, 4, 30, 0, 0, 0, 0, s.Location))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2026-04-03": "Karfreitag", "2026-04-06": "Ostermontag"}, days)
}

func TestHolidayService_SyncErrors(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, regie := s.CreateMember(t, "regie@example.org", access.RoleRegie)
	_, member := s.CreateMember(t, "mitglied@example.org")

	_, err := s.Holidays.Sync(ctx, member, 2026)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	_, err = s.Holidays.Sync(ctx, regie, 1800)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	_, err = s.Holidays.List(ctx, 3000)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestHolidayService_AllSourcesEmpty(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	logger := testutil.SetupTestLogger(t)

	svc, err := NewHolidayService(s.DBContext.HolidayRepo, []holidays.Fetcher{s.ICSFetcher, s.JSONFetcher}, "DE", logger)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), 2026)
	assert.True(t, errors.Is(err, holidays.ErrNoHolidays))
}
