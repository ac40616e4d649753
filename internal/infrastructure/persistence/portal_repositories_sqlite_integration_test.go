//go:build integration
// +build integration

package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvite() *onboarding.Invite {
	sum := sha256.Sum256([]byte(uuid.NewString()))
	return &onboarding.Invite{
		ID:        uuid.NewString(),
		TokenHash: hex.EncodeToString(sum[:]),
		Label:     "Ensemble 2026",
		Roles:     []access.Role{access.RoleMitglied},
		ExpiresAt: time.Now().Add(24 * time.Hour).UTC(),
		CreatedAt: time.Now().UTC(),
	}
}

func TestInviteSqliteRepository_MarkRedeemedOnlyOnce(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	invite := newTestInvite()
	require.NoError(t, tc.InviteRepo.Create(ctx, invite))

	fetched, err := tc.InviteRepo.GetByTokenHash(ctx, invite.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, invite.ID, fetched.ID)

	userID := uuid.NewString()
	require.NoError(t, tc.InviteRepo.MarkRedeemed(ctx, invite.ID, userID, time.Now().UTC()))

	err = tc.InviteRepo.MarkRedeemed(ctx, invite.ID, uuid.NewString(), time.Now().UTC())
	assert.ErrorIs(t, err, onboarding.ErrInviteAlreadyRedeemed)

	open, err := tc.InviteRepo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := tc.InviteRepo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].RedeemedBy)
	assert.Equal(t, userID, *all[0].RedeemedBy)
}

func TestInviteSqliteRepository_MarkRedeemedRejectsClosedInvites(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	now := time.Now().UTC()

	revoked := newTestInvite()
	require.NoError(t, tc.InviteRepo.Create(ctx, revoked))
	require.NoError(t, tc.InviteRepo.Revoke(ctx, revoked.ID, now))

	err := tc.InviteRepo.MarkRedeemed(ctx, revoked.ID, uuid.NewString(), now)
	assert.ErrorIs(t, err, onboarding.ErrInviteRevoked)

	expired := newTestInvite()
	require.NoError(t, tc.InviteRepo.Create(ctx, expired))

	err = tc.InviteRepo.MarkRedeemed(ctx, expired.ID, uuid.NewString(), expired.ExpiresAt.Add(time.Minute))
	assert.ErrorIs(t, err, onboarding.ErrInviteExpired)

	for _, id := range []string{revoked.ID, expired.ID} {
		fetched, err := tc.InviteRepo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, fetched.RedeemedAt)
		assert.Nil(t, fetched.RedeemedBy)
	}
}

func TestInviteSqliteRepository_RevokeUnknown(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	err := tc.InviteRepo.Revoke(context.Background(), uuid.NewString(), time.Now())
	assert.ErrorIs(t, err, onboarding.ErrInviteNotFound)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	invite := newTestInvite()
	require.NoError(t, tc.InviteRepo.Create(ctx, invite))

	userID := uuid.NewString()
	boom := errors.New("boom")
	err := tc.UnitOfWork.Do(ctx, func(repos onboarding.Repositories) error {
		user := &members.User{
			ID:           userID,
			Email:        "rollback@example.org",
			FirstName:    "Roll",
			LastName:     "Back",
			PasswordHash: "hash",
			Active:       true,
			Roles:        []access.Role{access.RoleMitglied},
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		if err := repos.Invites.MarkRedeemed(ctx, invite.ID, userID, time.Now().UTC()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = tc.UserRepo.GetByID(ctx, userID)
	assert.ErrorIs(t, err, members.ErrNotFound)

	fetched, err := tc.InviteRepo.GetByID(ctx, invite.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.RedeemedAt)
}

func TestFinanceSqliteRepository_ListFiltersByScope(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	creator := uuid.NewString()

	require.NoError(t, tc.EntryRepo.Create(ctx, NewTestEntry(creator, access.ScopeFinance, 1000)))
	require.NoError(t, tc.EntryRepo.Create(ctx, NewTestEntry(creator, access.ScopeBoard, 2000)))

	financeOnly, err := tc.EntryRepo.List(ctx, &finance.EntryQuery{Scopes: []access.VisibilityScope{access.ScopeFinance}})
	require.NoError(t, err)
	require.Len(t, financeOnly, 1)
	assert.Equal(t, access.ScopeFinance, financeOnly[0].Scope)

	both, err := tc.EntryRepo.List(ctx, &finance.EntryQuery{Scopes: access.AllVisibilityScopes})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	none, err := tc.EntryRepo.List(ctx, &finance.EntryQuery{})
	require.NoError(t, err)
	assert.Empty(t, none)

	dated, err := tc.EntryRepo.List(ctx, &finance.EntryQuery{
		Scopes: access.AllVisibilityScopes,
		From:   time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, dated)
}

func TestBudgetSqliteRepository_UniqueShowCategory(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	show := CreateTestShow(t, tc, 2026, "Der Sturm", true)

	budget := &finance.Budget{ID: uuid.NewString(), ShowID: &show.ID, Category: "Kostüme", PlannedCents: 50000, Scope: access.ScopeFinance}
	require.NoError(t, tc.BudgetRepo.Create(ctx, budget))

	dup := &finance.Budget{ID: uuid.NewString(), ShowID: &show.ID, Category: "Kostüme", PlannedCents: 1, Scope: access.ScopeFinance}
	assert.ErrorIs(t, tc.BudgetRepo.Create(ctx, dup), finance.ErrBudgetExists)

	global := &finance.Budget{ID: uuid.NewString(), Category: "Kostüme", PlannedCents: 1, Scope: access.ScopeBoard}
	require.NoError(t, tc.BudgetRepo.Create(ctx, global))

	list, err := tc.BudgetRepo.List(ctx, show.ID, []access.VisibilityScope{access.ScopeFinance})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	entry := NewTestEntry(uuid.NewString(), access.ScopeFinance, 500)
	entry.BudgetID = &budget.ID
	require.NoError(t, tc.EntryRepo.Create(ctx, entry))

	require.NoError(t, tc.BudgetRepo.Delete(ctx, budget.ID))
	fetched, err := tc.EntryRepo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.BudgetID)
}

func TestRehearsalSqliteRepository_ListRange(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	base := time.Date(2026, 6, 2, 17, 30, 0, 0, time.UTC)
	var batch []*rehearsals.Rehearsal
	for i := 0; i < 3; i++ {
		start := base.AddDate(0, 0, 7*i)
		batch = append(batch, &rehearsals.Rehearsal{
			ID:       uuid.NewString(),
			Title:    "Probe",
			StartsAt: start,
			EndsAt:   start.Add(2 * time.Hour),
			Status:   rehearsals.StatusScheduled,
		})
	}
	batch[2].Status = rehearsals.StatusCancelled
	require.NoError(t, tc.RehearsalRepo.CreateMany(ctx, batch))

	list, err := tc.RehearsalRepo.List(ctx, &rehearsals.Query{From: base.Add(time.Hour)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, batch[1].ID, list[0].ID)

	withCancelled, err := tc.RehearsalRepo.List(ctx, &rehearsals.Query{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, withCancelled, 3)

	attendance := &rehearsals.Attendance{RehearsalID: batch[0].ID, UserID: uuid.NewString(), Response: rehearsals.ResponseYes}
	require.NoError(t, tc.AttendanceRepo.Upsert(ctx, attendance))
	attendance.Response = rehearsals.ResponseNo
	require.NoError(t, tc.AttendanceRepo.Upsert(ctx, attendance))

	responses, err := tc.AttendanceRepo.ListByRehearsal(ctx, batch[0].ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, rehearsals.ResponseNo, responses[0].Response)

	require.NoError(t, tc.RehearsalRepo.Delete(ctx, batch[0].ID))
	responses, err = tc.AttendanceRepo.ListByRehearsal(ctx, batch[0].ID)
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestHolidaySqliteRepository_ReplaceYear(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	first := []holidays.Holiday{
		{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Name: "Neujahr", Source: holidays.SourceBuiltin},
		{Date: time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), Name: "1. Weihnachtstag", Source: holidays.SourceBuiltin},
		{Date: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), Name: "Neujahr", Source: holidays.SourceBuiltin},
	}
	require.NoError(t, tc.HolidayRepo.ReplaceYear(ctx, 2026, "DE", first))

	stored, err := tc.HolidayRepo.ListYear(ctx, 2026, "DE")
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	second := []holidays.Holiday{
		{Date: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), Name: "Tag der Deutschen Einheit", Source: holidays.SourceICS},
	}
	require.NoError(t, tc.HolidayRepo.ReplaceYear(ctx, 2026, "DE", second))

	stored, err = tc.HolidayRepo.ListYear(ctx, 2026, "DE")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, holidays.SourceICS, stored[0].Source)

	between, err := tc.HolidayRepo.ListBetween(ctx,
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), "DE")
	require.NoError(t, err)
	assert.Len(t, between, 1)
}

func TestGallerySqliteRepository_Tags(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()
	show := CreateTestShow(t, tc, 2025, "Was ihr wollt", true)
	tagged := uuid.NewString()

	image := &shows.GalleryImage{
		ID:            uuid.NewString(),
		ShowID:        show.ID,
		FilePath:      show.ID + "/premiere.jpg",
		ContentType:   "image/jpeg",
		TaggedUserIDs: []string{tagged},
	}
	require.NoError(t, tc.GalleryRepo.Create(ctx, image))

	list, err := tc.GalleryRepo.ListByShows(ctx, []string{show.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{tagged}, list[0].TaggedUserIDs)

	require.NoError(t, tc.GalleryRepo.Delete(ctx, image.ID))
	_, err = tc.GalleryRepo.GetByID(ctx, image.ID)
	assert.ErrorIs(t, err, shows.ErrImageNotFound)
}
