package finance

import "sort"

// Summarize compares budgets with approved entries per category. Pending
// entries are only counted; rejected ones are ignored. VarianceCents is
// planned minus spent, so a negative value means the budget is overdrawn.
func Summarize(showID string, budgets []*Budget, entries []*Entry) *Summary {
	categoryByBudget := make(map[string]string, len(budgets))
	byCategory := make(map[string]*CategorySummary)
	var order []string

	get := func(category string) *CategorySummary {
		cs, ok := byCategory[category]
		if !ok {
			cs = &CategorySummary{Category: category}
			byCategory[category] = cs
			order = append(order, category)
		}
		return cs
	}

	s := &Summary{ShowID: showID}
	for _, b := range budgets {
		categoryByBudget[b.ID] = b.Category
		get(b.Category).PlannedCents += b.PlannedCents
		s.TotalPlannedCents += b.PlannedCents
	}

	for _, e := range entries {
		switch e.Status {
		case StatusPending:
			s.PendingCount++
			continue
		case StatusRejected:
			continue
		}

		category := UnbudgetedCategory
		if e.BudgetID != nil {
			if c, ok := categoryByBudget[*e.BudgetID]; ok {
				category = c
			}
		}
		cs := get(category)
		if e.Kind == KindIncome {
			cs.IncomeCents += e.AmountCents
			s.TotalIncomeCents += e.AmountCents
		} else {
			cs.ExpenseCents += e.AmountCents
			s.TotalExpenseCents += e.AmountCents
		}
	}

	sort.Strings(order)
	s.Categories = make([]CategorySummary, 0, len(order))
	for _, c := range order {
		cs := byCategory[c]
		cs.VarianceCents = cs.PlannedCents - cs.ExpenseCents
		s.Categories = append(s.Categories, *cs)
	}
	s.BalanceCents = s.TotalIncomeCents - s.TotalExpenseCents
	return s
}
