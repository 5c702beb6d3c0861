package validate

import (
	"testing"

	"onlyfunds/internal/core"
)

func TestBudgetInputValid(t *testing.T) {
	b, errs := BudgetInput{Category: "food", Amount: "500.00", Month: 6, Year: 2024}.Validate("u1")
	if errs != nil {
		t.Fatalf("expected ok, got %v", errs)
	}
	if b.Category != core.Food || b.Amount.Cents != 50000 || b.Month != 6 || b.Year != 2024 || b.UserID != "u1" {
		t.Fatalf("unexpected budget: %+v", b)
	}
}

func TestBudgetInputFieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    BudgetInput
		field string
	}{
		{"missing category", BudgetInput{Amount: "10", Month: 1, Year: 2024}, "category"},
		{"zero amount", BudgetInput{Category: "food", Amount: "0", Month: 1, Year: 2024}, "amount"},
		{"negative amount", BudgetInput{Category: "food", Amount: "-5", Month: 1, Year: 2024}, "amount"},
		{"garbage amount", BudgetInput{Category: "food", Amount: "ten", Month: 1, Year: 2024}, "amount"},
		{"month zero", BudgetInput{Category: "food", Amount: "10", Month: 0, Year: 2024}, "month"},
		{"month thirteen", BudgetInput{Category: "food", Amount: "10", Month: 13, Year: 2024}, "month"},
		{"implausible year", BudgetInput{Category: "food", Amount: "10", Month: 1, Year: 1776}, "year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := tt.in.Validate("u1")
			if len(errs) == 0 {
				t.Fatalf("expected errors")
			}
			if !errs.Has(tt.field) {
				t.Errorf("expected error on %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestBudgetInputCollectsAllFailures(t *testing.T) {
	_, errs := BudgetInput{}.Validate("u1")
	for _, field := range []string{"category", "amount", "month", "year"} {
		if !errs.Has(field) {
			t.Errorf("expected failure on %q, got %v", field, errs)
		}
	}
	if errs.Error() == "" {
		t.Errorf("expected non-empty error string")
	}
}

func TestTransactionInputValid(t *testing.T) {
	tr, errs := TransactionInput{Category: "transport", Amount: "12,50", Type: "Expense", Date: "2024-06-05"}.Validate("u1")
	if errs != nil {
		t.Fatalf("expected ok, got %v", errs)
	}
	if tr.Category != core.Transport || tr.Amount.Cents != 1250 || tr.Type != core.Expense {
		t.Fatalf("unexpected transaction: %+v", tr)
	}
	if tr.Date.Month() != 6 || tr.Date.Year() != 2024 {
		t.Fatalf("unexpected date: %v", tr.Date)
	}
}

func TestTransactionInputZeroAmountAllowed(t *testing.T) {
	_, errs := TransactionInput{Category: "food", Amount: "0", Type: "expense", Date: "2024-06-05"}.Validate("u1")
	if errs != nil {
		t.Fatalf("zero amount transactions are valid, got %v", errs)
	}
}

func TestTransactionInputFieldErrors(t *testing.T) {
	_, errs := TransactionInput{Category: "food", Amount: "1", Type: "transfer", Date: "05/06/2024"}.Validate("u1")
	if !errs.Has("type") || !errs.Has("date") {
		t.Fatalf("expected type and date failures, got %v", errs)
	}
}

func TestUnknownCategoryFallsBackToOther(t *testing.T) {
	b, errs := BudgetInput{Category: "crypto", Amount: "10", Month: 1, Year: 2024}.Validate("u1")
	if errs != nil {
		t.Fatalf("expected ok, got %v", errs)
	}
	if b.Category != core.Other {
		t.Fatalf("expected fallback to other, got %v", b.Category)
	}
}
