// Package validate checks user-supplied input before it reaches the stores
// or a backend. Failures are typed, field-keyed messages rather than
// sentinel errors, so the API layer can render them per form field. The
// stores themselves do not re-validate.
package validate

import (
	"strings"
	"time"

	"onlyfunds/internal/core"
)

// Year bounds considered plausible for budgets and transactions.
const (
	MinYear = 1900
	MaxYear = 2200
)

// FieldError is one validation failure keyed by input field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors aggregates per-field failures; an empty list means valid.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return ""
	}
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

// Has reports whether a given field failed.
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// BudgetInput is the raw set-budget form payload.
type BudgetInput struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

// Validate checks the input and, when valid, returns the budget ready for
// the store (id and persistence assignment left to the caller).
func (in BudgetInput) Validate(userID string) (core.Budget, FieldErrors) {
	var errs FieldErrors

	category := core.ParseCategory(in.Category)
	if strings.TrimSpace(in.Category) == "" {
		errs = append(errs, FieldError{Field: "category", Message: "category is required"})
	}

	cents, err := core.ParseDecimalToCents(in.Amount)
	if err != nil || cents <= 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "amount must be a positive decimal"})
	}

	if in.Month < 1 || in.Month > 12 {
		errs = append(errs, FieldError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if in.Year < MinYear || in.Year > MaxYear {
		errs = append(errs, FieldError{Field: "year", Message: "year is out of range"})
	}

	if len(errs) > 0 {
		return core.Budget{}, errs
	}

	return core.Budget{
		Category: category,
		Amount:   core.Money{Cents: cents},
		Month:    in.Month,
		Year:     in.Year,
		UserID:   userID,
	}, nil
}

// TransactionInput is the raw add-transaction form payload.
type TransactionInput struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Date     string `json:"date"` // YYYY-MM-DD
}

// Validate checks the input and, when valid, returns the transaction ready
// for persistence.
func (in TransactionInput) Validate(userID string) (core.Transaction, FieldErrors) {
	var errs FieldErrors

	category := core.ParseCategory(in.Category)
	if strings.TrimSpace(in.Category) == "" {
		errs = append(errs, FieldError{Field: "category", Message: "category is required"})
	}

	cents, err := core.ParseDecimalToCents(in.Amount)
	if err != nil {
		errs = append(errs, FieldError{Field: "amount", Message: "amount must be a non-negative decimal"})
	}

	typ := core.TransactionType(strings.ToLower(strings.TrimSpace(in.Type)))
	if typ.Validate() != nil {
		errs = append(errs, FieldError{Field: "type", Message: "type must be income or expense"})
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(in.Date))
	if err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "date must be YYYY-MM-DD"})
	} else if y := date.Year(); y < MinYear || y > MaxYear {
		errs = append(errs, FieldError{Field: "date", Message: "date year is out of range"})
	}

	if len(errs) > 0 {
		return core.Transaction{}, errs
	}

	return core.Transaction{
		Category: category,
		Amount:   core.Money{Cents: cents},
		Type:     typ,
		Date:     core.Date{Time: date},
		UserID:   userID,
	}, nil
}
