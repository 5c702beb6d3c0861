package core

import "testing"

func tx(cat Category, typ TransactionType, cents int64, year, month, day int) Transaction {
	return Transaction{
		ID:       "t",
		Category: cat,
		Amount:   Money{Cents: cents},
		Type:     typ,
		Date:     NewDate(year, month, day),
		UserID:   "u1",
	}
}

func budget(cat Category, cents int64, month, year int) Budget {
	return Budget{
		ID:       "b",
		Category: cat,
		Amount:   Money{Cents: cents},
		Month:    month,
		Year:     year,
		UserID:   "u1",
	}
}

func TestComputeProgressOneRecordPerMatchingBudget(t *testing.T) {
	budgets := []Budget{
		budget(Food, 50000, 6, 2024),
		budget(Transport, 10000, 6, 2024),
		budget(Food, 40000, 7, 2024), // other period, must be excluded
	}
	transactions := []Transaction{
		tx(Entertainment, Expense, 9999, 2024, 6, 1), // no budget for category
	}

	got := ComputeProgress(transactions, budgets, 6, 2024)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// Insertion order, not sorted
	if got[0].Category != Food || got[1].Category != Transport {
		t.Fatalf("unexpected order: %v, %v", got[0].Category, got[1].Category)
	}
}

func TestComputeProgressSumsOnlyMatchingExpenses(t *testing.T) {
	budgets := []Budget{budget(Food, 50000, 6, 2024)}
	transactions := []Transaction{
		tx(Food, Expense, 20000, 2024, 6, 5),
		tx(Food, Expense, 15000, 2024, 6, 20),
		tx(Food, Income, 100000, 2024, 6, 10),     // income excluded
		tx(Transport, Expense, 5000, 2024, 6, 1),  // other category
		tx(Food, Expense, 30000, 2024, 5, 31),     // other month
		tx(Food, Expense, 30000, 2023, 6, 15),     // other year
	}

	got := ComputeProgress(transactions, budgets, 6, 2024)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	p := got[0]
	if p.SpentAmount.Cents != 35000 {
		t.Errorf("spent = %d, want 35000", p.SpentAmount.Cents)
	}
	if p.RemainingAmount.Cents != 15000 {
		t.Errorf("remaining = %d, want 15000", p.RemainingAmount.Cents)
	}
	if p.PercentageUsed != 70 {
		t.Errorf("percentage = %d, want 70", p.PercentageUsed)
	}
	if p.IsOverBudget {
		t.Errorf("expected not over budget")
	}
}

func TestComputeProgressOverBudget(t *testing.T) {
	budgets := []Budget{budget(Utilities, 100000, 3, 2025)}
	transactions := []Transaction{
		tx(Utilities, Expense, 120000, 2025, 3, 1),
	}

	got := ComputeProgress(transactions, budgets, 3, 2025)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	p := got[0]
	if p.SpentAmount.Cents != 120000 {
		t.Errorf("spent = %d, want 120000", p.SpentAmount.Cents)
	}
	if p.RemainingAmount.Cents != -20000 {
		t.Errorf("remaining = %d, want -20000", p.RemainingAmount.Cents)
	}
	if p.PercentageUsed != 120 {
		t.Errorf("percentage = %d, want 120", p.PercentageUsed)
	}
	if !p.IsOverBudget {
		t.Errorf("expected over budget")
	}
}

func TestComputeProgressExactlyAtLimitIsNotOver(t *testing.T) {
	budgets := []Budget{budget(Food, 10000, 1, 2025)}
	transactions := []Transaction{tx(Food, Expense, 10000, 2025, 1, 15)}

	got := ComputeProgress(transactions, budgets, 1, 2025)
	if got[0].IsOverBudget {
		t.Errorf("spent == budget must not be over budget")
	}
	if got[0].PercentageUsed != 100 {
		t.Errorf("percentage = %d, want 100", got[0].PercentageUsed)
	}
	if got[0].RemainingAmount.Cents != 0 {
		t.Errorf("remaining = %d, want 0", got[0].RemainingAmount.Cents)
	}
}

func TestComputeProgressZeroBudgetAmount(t *testing.T) {
	budgets := []Budget{{Category: Food, Amount: Money{Cents: 0}, Month: 1, Year: 2025, UserID: "u1"}}
	transactions := []Transaction{tx(Food, Expense, 500, 2025, 1, 2)}

	got := ComputeProgress(transactions, budgets, 1, 2025)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].PercentageUsed != 0 {
		t.Errorf("zero budget must yield 0%%, got %d", got[0].PercentageUsed)
	}
	if !got[0].IsOverBudget {
		t.Errorf("any spend against a zero budget is over budget")
	}
}

func TestComputeProgressEmptyInputs(t *testing.T) {
	if got := ComputeProgress(nil, nil, 6, 2024); len(got) != 0 {
		t.Fatalf("expected empty result, got %d records", len(got))
	}
	if got := ComputeProgress([]Transaction{tx(Food, Expense, 100, 2024, 6, 1)}, nil, 6, 2024); len(got) != 0 {
		t.Fatalf("transactions without budgets must yield no records, got %d", len(got))
	}
}

func TestComputeProgressPeriodChangeDoesNotLeak(t *testing.T) {
	budgets := []Budget{
		budget(Food, 10000, 6, 2024),
		budget(Food, 10000, 7, 2024),
	}
	transactions := []Transaction{
		tx(Food, Expense, 4000, 2024, 6, 10),
		tx(Food, Expense, 9000, 2024, 7, 10),
	}

	june := ComputeProgress(transactions, budgets, 6, 2024)
	july := ComputeProgress(transactions, budgets, 7, 2024)
	if len(june) != 1 || len(july) != 1 {
		t.Fatalf("expected one record per period, got %d and %d", len(june), len(july))
	}
	if june[0].SpentAmount.Cents != 4000 {
		t.Errorf("june spent = %d, want 4000", june[0].SpentAmount.Cents)
	}
	if july[0].SpentAmount.Cents != 9000 {
		t.Errorf("july spent = %d, want 9000", july[0].SpentAmount.Cents)
	}
}

func TestPercentageUsedRounding(t *testing.T) {
	cases := []struct {
		spent, budget int64
		want          int
	}{
		{0, 10000, 0},
		{3333, 10000, 33},
		{3350, 10000, 34}, // half rounds up
		{6666, 10000, 67},
		{10000, 10000, 100},
		{15000, 10000, 150},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, tc := range cases {
		if got := percentageUsed(tc.spent, tc.budget); got != tc.want {
			t.Errorf("percentageUsed(%d, %d) = %d, want %d", tc.spent, tc.budget, got, tc.want)
		}
	}
}
