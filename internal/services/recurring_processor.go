package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"onlyfunds/internal/core"
	"onlyfunds/internal/remote"
	"onlyfunds/internal/storage"
)

// RecurringProcessor materializes transactions from recurring templates
// (rent, salary, subscriptions). Templates live in the local database; the
// created transactions go through the regular persistence path so they
// reach the remote provider like any other write.
type RecurringProcessor struct {
	repo         *storage.Repository
	transactions remote.TransactionPersister
}

func NewRecurringProcessor(repo *storage.Repository, transactions remote.TransactionPersister) *RecurringProcessor {
	return &RecurringProcessor{repo: repo, transactions: transactions}
}

// ProcessDue materializes every active template that is due at now.
// Individual template failures are logged and skipped so one broken
// template cannot stall the rest.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.repo == nil || p.transactions == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	templates, err := p.repo.GetActiveRecurringForProcessing(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("get active recurring templates: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring transactions",
		"total_active", len(templates),
		"processing_date", now.Format("2006-01-02"))

	processed := 0
	for _, rt := range templates {
		due, err := p.isDue(ctx, rt, now)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to check template dueness",
				"recurring_id", rt.ID,
				"error", err)
			continue
		}
		if !due {
			continue
		}

		tx := core.Transaction{
			Category: rt.Category,
			Amount:   rt.Amount,
			Type:     rt.Type,
			Date:     core.Date{Time: now},
			UserID:   rt.UserID,
		}
		created, err := p.transactions.CreateTransaction(ctx, tx)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to create transaction from template",
				"recurring_id", rt.ID,
				"description", rt.Description,
				"error", err)
			continue
		}

		if err := p.repo.UpdateRecurringLastExecution(ctx, rt.ID, now); err != nil {
			slog.ErrorContext(ctx, "Failed to update last execution date",
				"recurring_id", rt.ID,
				"error", err)
			// Continue anyway - the transaction was created successfully
		}

		processed++
		slog.InfoContext(ctx, "Created transaction from recurring template",
			"recurring_id", rt.ID,
			"transaction_id", created.ID,
			"description", rt.Description,
			"amount_cents", rt.Amount.Cents,
			"frequency", rt.Every)
	}

	slog.InfoContext(ctx, "Recurring transaction processing complete",
		"processed", processed,
		"total_checked", len(templates))

	return processed, nil
}

func (p *RecurringProcessor) isDue(ctx context.Context, rt core.RecurringTransaction, now time.Time) (bool, error) {
	lastExecution, err := p.repo.LastExecution(ctx, rt.ID)
	if err != nil {
		return false, fmt.Errorf("last execution: %w", err)
	}
	checker, err := GetDuenessChecker(rt.Every)
	if err != nil {
		return false, err
	}
	return checker.IsDue(lastExecution, now, rt.StartDate), nil
}
