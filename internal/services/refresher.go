package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"onlyfunds/internal/remote"
	"onlyfunds/internal/store"
)

// Refresher re-fetches both collections from the backend and installs them
// wholesale. Each store hands out a fetch sequence number before the call
// starts, so a response that loses the race against a newer fetch is
// dropped instead of overwriting fresher data.
type Refresher struct {
	stores   *store.Registry
	provider remote.Provider
}

func NewRefresher(stores *store.Registry, provider remote.Provider) *Refresher {
	return &Refresher{stores: stores, provider: provider}
}

// Refresh fetches budgets and transactions concurrently. A failed fetch
// leaves the affected collection unchanged; the other collection still
// refreshes.
func (r *Refresher) Refresh(ctx context.Context, userID string) error {
	set := r.stores.For(userID)

	budgetSeq := set.Budgets.NextFetch()
	txSeq := set.Transactions.NextFetch()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		budgets, err := r.provider.FetchBudgets(ctx, userID)
		if err != nil {
			return fmt.Errorf("fetch budgets: %w", err)
		}
		if !set.Budgets.Replace(budgetSeq, budgets) {
			slog.WarnContext(ctx, "Dropped stale budget fetch", "seq", budgetSeq)
		}
		return nil
	})

	g.Go(func() error {
		transactions, err := r.provider.FetchTransactions(ctx, userID)
		if err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		if !set.Transactions.Replace(txSeq, transactions) {
			slog.WarnContext(ctx, "Dropped stale transaction fetch", "seq", txSeq)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh %s: %w", userID, err)
	}

	slog.InfoContext(ctx, "Stores refreshed",
		"user_id", userID,
		"budgets", set.Budgets.Len(),
		"transactions", set.Transactions.Len())
	return nil
}
