// Package services orchestrates the stores, the data backend and the sync
// pipeline. Persistence always runs before the in-memory mutation: a failed
// backend call leaves the stores on their last known state.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"onlyfunds/internal/core"
	"onlyfunds/internal/remote"
	"onlyfunds/internal/store"
	"onlyfunds/internal/validate"
)

// BudgetService handles the set-budget and remove-budget operations.
type BudgetService struct {
	stores   *store.Registry
	provider remote.Provider
}

func NewBudgetService(stores *store.Registry, provider remote.Provider) *BudgetService {
	return &BudgetService{stores: stores, provider: provider}
}

// SetBudget validates the input, persists the upsert through the backend and
// mirrors it into the user's budget store. Validation failures come back as
// field errors, never as an opaque error.
func (s *BudgetService) SetBudget(ctx context.Context, userID string, in validate.BudgetInput) (core.Budget, validate.FieldErrors, error) {
	b, fieldErrs := in.Validate(userID)
	if fieldErrs != nil {
		return core.Budget{}, fieldErrs, nil
	}

	stored, err := s.provider.UpsertBudget(ctx, b)
	if err != nil {
		return core.Budget{}, nil, fmt.Errorf("persist budget: %w", err)
	}

	_, created := s.stores.For(userID).Budgets.Upsert(stored)
	slog.InfoContext(ctx, "Budget set",
		"id", stored.ID,
		"category", stored.Category,
		"amount_cents", stored.Amount.Cents,
		"month", stored.Month,
		"year", stored.Year,
		"created", created)

	return stored, nil, nil
}

// RemoveBudget deletes the budget from the backend and the store. Removing
// an id that is already gone is not an error.
func (s *BudgetService) RemoveBudget(ctx context.Context, userID, id string) error {
	if err := s.provider.DeleteBudget(ctx, userID, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	removed := s.stores.For(userID).Budgets.Remove(id)
	slog.InfoContext(ctx, "Budget removed", "id", id, "was_present", removed)
	return nil
}
