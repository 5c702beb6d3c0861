package http

import (
	"onlyfunds/internal/core"
)

// Wire representations of the core types. Amounts go out both as decimal
// strings and raw cents so clients don't have to parse money.

type categoryView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type budgetView struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
}

type transactionView struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Type        string `json:"type"`
	Date        string `json:"date"`
}

type progressView struct {
	Category             string `json:"category"`
	CategoryLabel        string `json:"category_label"`
	BudgetAmount         string `json:"budget_amount"`
	BudgetAmountCents    int64  `json:"budget_amount_cents"`
	SpentAmount          string `json:"spent_amount"`
	SpentAmountCents     int64  `json:"spent_amount_cents"`
	RemainingAmount      string `json:"remaining_amount"`
	RemainingAmountCents int64  `json:"remaining_amount_cents"`
	PercentageUsed       int    `json:"percentage_used"`
	IsOverBudget         bool   `json:"is_over_budget"`
}

type recurringView struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Type        string `json:"type"`
	Every       string `json:"every"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
}

const viewDateLayout = "2006-01-02"

func categoryViews(catalog []core.CategoryInfo) []categoryView {
	out := make([]categoryView, len(catalog))
	for i, info := range catalog {
		out[i] = categoryView{Name: string(info.Category), Label: info.Label}
	}
	return out
}

func budgetViews(budgets []core.Budget) []budgetView {
	out := make([]budgetView, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, budgetView{
			ID:          b.ID,
			Category:    string(b.Category),
			Amount:      b.Amount.String(),
			AmountCents: b.Amount.Cents,
			Month:       b.Month,
			Year:        b.Year,
		})
	}
	return out
}

func transactionViews(transactions []core.Transaction) []transactionView {
	out := make([]transactionView, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, transactionView{
			ID:          t.ID,
			Category:    string(t.Category),
			Amount:      t.Amount.String(),
			AmountCents: t.Amount.Cents,
			Type:        string(t.Type),
			Date:        t.Date.Format(viewDateLayout),
		})
	}
	return out
}

func progressViews(progress []core.BudgetProgress) []progressView {
	out := make([]progressView, 0, len(progress))
	for _, p := range progress {
		out = append(out, progressView{
			Category:             string(p.Category),
			CategoryLabel:        p.Category.Label(),
			BudgetAmount:         p.BudgetAmount.String(),
			BudgetAmountCents:    p.BudgetAmount.Cents,
			SpentAmount:          p.SpentAmount.String(),
			SpentAmountCents:     p.SpentAmount.Cents,
			RemainingAmount:      p.RemainingAmount.String(),
			RemainingAmountCents: p.RemainingAmount.Cents,
			PercentageUsed:       p.PercentageUsed,
			IsOverBudget:         p.IsOverBudget,
		})
	}
	return out
}

func recurringViews(templates []core.RecurringTransaction) []recurringView {
	out := make([]recurringView, 0, len(templates))
	for _, rt := range templates {
		v := recurringView{
			ID:          rt.ID,
			Description: rt.Description,
			Category:    string(rt.Category),
			Amount:      rt.Amount.String(),
			AmountCents: rt.Amount.Cents,
			Type:        string(rt.Type),
			Every:       string(rt.Every),
			StartDate:   rt.StartDate.Format(viewDateLayout),
		}
		if !rt.EndDate.IsZero() {
			v.EndDate = rt.EndDate.Format(viewDateLayout)
		}
		out = append(out, v)
	}
	return out
}
