//go:build integration
// +build integration

package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"testing"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expenseInput(amount int64, scope access.VisibilityScope) *finance.EntryInput {
	return &finance.EntryInput{
		Kind:        finance.KindExpense,
		AmountCents: amount,
		Description: "Holz für das Bühnenbild",
		BookedOn:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Scope:       scope,
	}
}

func TestFinanceService_ScopesAndAutoApproval(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, kasse := s.CreateMember(t, "kasse@example.org", access.RoleKasse)

	small, err := s.Finance.CreateEntry(ctx, kasse, expenseInput(TestApprovalThresholdCents, ""))
	require.NoError(t, err)
	assert.Equal(t, access.ScopeFinance, small.Scope)
	assert.Equal(t, finance.StatusApproved, small.Status)
	assert.NotNil(t, small.ApprovedAt)
	assert.Nil(t, small.ApprovedBy)

	large, err := s.Finance.CreateEntry(ctx, kasse, expenseInput(TestApprovalThresholdCents+1, ""))
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPending, large.Status)

	_, err = s.Finance.CreateEntry(ctx, kasse, expenseInput(1000, access.ScopeBoard))
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	_, err = s.Finance.CreateEntry(ctx, kasse, expenseInput(0, ""))
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestFinanceService_BoardEntriesAreHidden(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, kasse := s.CreateMember(t, "kasse@example.org", access.RoleKasse)
	_, admin := s.CreateMember(t, "admin@example.org", access.RoleAdmin)

	board, err := s.Finance.CreateEntry(ctx, admin, expenseInput(99000, access.ScopeBoard))
	require.NoError(t, err)
	_, err = s.Finance.CreateEntry(ctx, admin, expenseInput(99000, access.ScopeFinance))
	require.NoError(t, err)

	visible, err := s.Finance.ListEntries(ctx, kasse, nil)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, access.ScopeFinance, visible[0].Scope)

	_, err = s.Finance.GetEntry(ctx, kasse, board.ID)
	assert.ErrorIs(t, err, finance.ErrEntryNotFound)

	all, err := s.Finance.ListEntries(ctx, admin, &finance.EntryQuery{Status: finance.StatusPending})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFinanceService_ApprovalRules(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, kasse := s.CreateMember(t, "kasse@example.org", access.RoleKasse)
	_, vorstand := s.CreateMember(t, "vorstand@example.org", access.RoleVorstand)
	_, member := s.CreateMember(t, "mitglied@example.org")

	entry, err := s.Finance.CreateEntry(ctx, kasse, expenseInput(25000, ""))
	require.NoError(t, err)

	_, err = s.Finance.Approve(ctx, kasse, entry.ID)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	_, err = s.Finance.Approve(ctx, member, entry.ID)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	_, err = s.Finance.Reject(ctx, vorstand, entry.ID, "  ")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	approved, err := s.Finance.Approve(ctx, vorstand, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, vorstand.UserID, *approved.ApprovedBy)

	_, err = s.Finance.Approve(ctx, vorstand, entry.ID)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	_, err = s.Finance.UpdateEntry(ctx, kasse, entry.ID, expenseInput(100, ""))
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(s.Finance.DeleteEntry(ctx, kasse, entry.ID)))
}

func TestFinanceService_SummaryAndExport(t *testing.T) {
	s := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	_, kasse := s.CreateMember(t, "kasse@example.org", access.RoleKasse)
	_, vorstand := s.CreateMember(t, "vorstand@example.org", access.RoleVorstand)
	show := s.createShow(t, 2026, "Der Sturm", true)

	budget, err := s.Finance.CreateBudget(ctx, kasse, &finance.BudgetInput{ShowID: &show.ID, Category: "Bühnenbild", PlannedCents: 100000})
	require.NoError(t, err)
	_, err = s.Finance.CreateBudget(ctx, kasse, &finance.BudgetInput{ShowID: &show.ID, Category: "Bühnenbild", PlannedCents: 1})
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	in := expenseInput(30000, "")
	in.ShowID = &show.ID
	in.BudgetID = &budget.ID
	big, err := s.Finance.CreateEntry(ctx, kasse, in)
	require.NoError(t, err)
	_, err = s.Finance.Approve(ctx, vorstand, big.ID)
	require.NoError(t, err)

	pending := expenseInput(20000, "")
	pending.ShowID = &show.ID
	pending.BudgetID = &budget.ID
	_, err = s.Finance.CreateEntry(ctx, kasse, pending)
	require.NoError(t, err)

	summary, err := s.Finance.Summary(ctx, kasse, show.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), summary.TotalPlannedCents)
	assert.Equal(t, int64(30000), summary.TotalExpenseCents)
	assert.Equal(t, 1, summary.PendingCount)

	var buf bytes.Buffer
	require.NoError(t, s.Finance.ExportCSV(ctx, kasse, &finance.EntryQuery{ShowID: show.ID}, &buf))

	r := csv.NewReader(&buf)
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Datum", records[0][0])
	assert.Equal(t, "Ausgabe", records[1][1])

	_, member := s.CreateMember(t, "mitglied@example.org")
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(s.Finance.ExportCSV(ctx, member, nil, &buf)))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0,05", FormatCents(5))
	assert.Equal(t, "1234,50", FormatCents(123450))
	assert.Equal(t, "-3,00", FormatCents(-300))
}
