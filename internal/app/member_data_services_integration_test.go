//go:build integration
// +build integration

package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/measurements"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsentService_ReviewFlow(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, board := s.CreateMember(t, "vorstand@example.org", access.RoleVorstand)
	anna, annaP := s.CreateMember(t, "anna@example.org")

	_, err := s.Consent.GetOwn(ctx, annaP)
	assert.ErrorIs(t, err, consent.ErrNotFound)

	c, err := s.Consent.Submit(ctx, annaP, &consent.Submission{Consents: true})
	require.NoError(t, err)
	assert.Equal(t, consent.StatusPending, c.Status)

	_, err = s.Consent.ListPending(ctx, annaP)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
	pending, err := s.Consent.ListPending(ctx, board)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = s.Consent.Review(ctx, board, anna.ID, false, "")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	reviewed, err := s.Consent.Review(ctx, board, anna.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, consent.StatusApproved, reviewed.Status)
	_, err = s.Consent.Review(ctx, board, anna.ID, true, "")
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	ok, err := s.Consent.PublishableUsers(ctx, []string{anna.ID, "someone-else"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{anna.ID: true}, ok)

	resubmitted, err := s.Consent.Submit(ctx, annaP, &consent.Submission{Consents: true, Notes: "Nur Gruppenfotos"})
	require.NoError(t, err)
	assert.Equal(t, consent.StatusPending, resubmitted.Status)
	ok, err = s.Consent.PublishableUsers(ctx, []string{anna.ID})
	require.NoError(t, err)
	assert.Empty(t, ok)
}

func TestMeasurementService_Record(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, kostuem := s.CreateMember(t, "kostuem@example.org", access.RoleKostuem)
	anna, annaP := s.CreateMember(t, "anna@example.org")
	ben, _ := s.CreateMember(t, "ben@example.org")

	list, err := s.Measurements.Record(ctx, annaP, anna.ID, []measurements.Input{
		{Kind: measurements.KindHeight, Value: 171},
		{Kind: measurements.KindShoeSize, Value: 39},
	})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = s.Measurements.Record(ctx, kostuem, anna.ID, []measurements.Input{
		{Kind: measurements.KindHeight, Value: 172, Notes: "mit Schuhen"},
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, m := range list {
		if m.Kind == measurements.KindHeight {
			assert.Equal(t, 172.0, m.Value)
			assert.Equal(t, measurements.UnitCM, m.Unit)
			assert.Equal(t, kostuem.UserID, m.MeasuredBy)
		}
	}

	_, err = s.Measurements.Record(ctx, annaP, ben.ID, []measurements.Input{{Kind: measurements.KindHead, Value: 56}})
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
	_, err = s.Measurements.Record(ctx, annaP, anna.ID, []measurements.Input{
		{Kind: measurements.KindHead, Value: 56},
		{Kind: measurements.KindHead, Value: 57},
	})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	_, err = s.Measurements.Record(ctx, annaP, anna.ID, []measurements.Input{{Kind: "wingspan", Value: 180}})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	_, err = s.Measurements.ListAll(ctx, annaP)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
	all, err := s.Measurements.ListAll(ctx, kostuem)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.Measurements.Delete(ctx, annaP, anna.ID, measurements.KindShoeSize))
	own, err := s.Measurements.ListForUser(ctx, annaP, anna.ID)
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestDietaryService_OwnRecordsAndCatering(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, regie := s.CreateMember(t, "regie@example.org", access.RoleRegie)
	_, anna := s.CreateMember(t, "anna@example.org")
	_, ben := s.CreateMember(t, "ben@example.org")

	nuts, err := s.Dietary.Create(ctx, anna, &dietary.Input{Label: "Nüsse", Severity: dietary.SeveritySevereAllergy, Notes: "Notfallset im Rucksack"})
	require.NoError(t, err)
	_, err = s.Dietary.Create(ctx, ben, &dietary.Input{Label: "Vegetarisch", Severity: dietary.SeverityPreference})
	require.NoError(t, err)
	_, err = s.Dietary.Create(ctx, anna, &dietary.Input{Label: " ", Severity: dietary.SeverityPreference})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	_, err = s.Dietary.Update(ctx, ben, nuts.ID, &dietary.Input{Label: "Keine", Severity: dietary.SeverityPreference})
	assert.ErrorIs(t, err, dietary.ErrNotFound)
	assert.ErrorIs(t, s.Dietary.Delete(ctx, ben, nuts.ID), dietary.ErrNotFound)

	_, err = s.Dietary.CateringOverview(ctx, anna)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
	items, err := s.Dietary.CateringOverview(ctx, regie)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, s.Dietary.Delete(ctx, anna, nuts.ID))
	own, err := s.Dietary.ListOwn(ctx, anna)
	require.NoError(t, err)
	assert.Empty(t, own)
}
