package core

// BudgetProgress is the derived per-category comparison of spend against
// limit for one period. It is recomputed wholesale, never patched in place.
type BudgetProgress struct {
	Category        Category
	BudgetAmount    Money
	SpentAmount     Money
	RemainingAmount Money
	PercentageUsed  int
	IsOverBudget    bool
}

// ComputeProgress joins budgets with transactions for the given month and
// year and produces one BudgetProgress per matching budget, in the order the
// budgets were supplied.
//
// Only expense-type transactions sharing the budget's category and calendar
// period contribute to SpentAmount; income is always excluded. Categories
// with transactions but no budget for the period produce no record. The
// function is total: a zero budget amount yields PercentageUsed 0 rather
// than a division error.
func ComputeProgress(transactions []Transaction, budgets []Budget, month, year int) []BudgetProgress {
	var out []BudgetProgress
	for _, b := range budgets {
		if b.Month != month || b.Year != year {
			continue
		}
		var spent int64
		for _, t := range transactions {
			if t.Type != Expense || t.Category != b.Category {
				continue
			}
			if !t.Date.InPeriod(month, year) {
				continue
			}
			spent += t.Amount.Cents
		}
		out = append(out, BudgetProgress{
			Category:        b.Category,
			BudgetAmount:    b.Amount,
			SpentAmount:     Money{Cents: spent},
			RemainingAmount: Money{Cents: b.Amount.Cents - spent},
			PercentageUsed:  percentageUsed(spent, b.Amount.Cents),
			IsOverBudget:    spent > b.Amount.Cents,
		})
	}
	return out
}

// percentageUsed computes round(spent/budget*100) half-up in integer
// arithmetic. A zero budget is defined as 0% used.
func percentageUsed(spent, budget int64) int {
	if budget == 0 {
		return 0
	}
	return int((spent*200 + budget) / (budget * 2))
}
