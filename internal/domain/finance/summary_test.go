//go:build unit
// +build unit

package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	costumes := &Budget{ID: "b-costumes", Category: "Kostüme", PlannedCents: 50000}
	stage := &Budget{ID: "b-stage", Category: "Bühne", PlannedCents: 80000}
	costumesID := costumes.ID
	stageID := stage.ID
	unknownID := "b-unknown"

	entries := []*Entry{
		{Kind: KindExpense, AmountCents: 20000, BudgetID: &costumesID, Status: StatusApproved},
		{Kind: KindExpense, AmountCents: 45000, BudgetID: &costumesID, Status: StatusApproved},
		{Kind: KindExpense, AmountCents: 10000, BudgetID: &stageID, Status: StatusPending},
		{Kind: KindExpense, AmountCents: 99999, BudgetID: &stageID, Status: StatusRejected},
		{Kind: KindIncome, AmountCents: 150000, Status: StatusApproved},
		{Kind: KindExpense, AmountCents: 500, BudgetID: &unknownID, Status: StatusApproved},
	}

	s := Summarize("show-1", []*Budget{costumes, stage}, entries)

	assert.Equal(t, "show-1", s.ShowID)
	assert.Equal(t, int64(130000), s.TotalPlannedCents)
	assert.Equal(t, int64(150000), s.TotalIncomeCents)
	assert.Equal(t, int64(65500), s.TotalExpenseCents)
	assert.Equal(t, int64(84500), s.BalanceCents)
	assert.Equal(t, 1, s.PendingCount)

	require.Len(t, s.Categories, 3)
	assert.Equal(t, "Bühne", s.Categories[0].Category)
	assert.Equal(t, int64(80000), s.Categories[0].VarianceCents)

	assert.Equal(t, "Kostüme", s.Categories[1].Category)
	assert.Equal(t, int64(65000), s.Categories[1].ExpenseCents)
	assert.Equal(t, int64(-15000), s.Categories[1].VarianceCents)

	assert.Equal(t, UnbudgetedCategory, s.Categories[2].Category)
	assert.Equal(t, int64(150000), s.Categories[2].IncomeCents)
	assert.Equal(t, int64(500), s.Categories[2].ExpenseCents)
}

func TestEntry_Editable(t *testing.T) {
	assert.True(t, (&Entry{Status: StatusPending}).Editable())
	assert.False(t, (&Entry{Status: StatusApproved}).Editable())
	assert.False(t, (&Entry{Status: StatusRejected}).Editable())
}
