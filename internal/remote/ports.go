// Package remote defines the ports for the external data provider. Every
// fetch returns a full replacement collection scoped to a user; there is no
// delta protocol.
package remote

import (
	"context"

	"onlyfunds/internal/core"
)

type (
	BudgetFetcher interface {
		// FetchBudgets returns all budgets owned by the user.
		FetchBudgets(ctx context.Context, userID string) ([]core.Budget, error)
	}

	BudgetPersister interface {
		// UpsertBudget persists the budget, creating or updating on the
		// (userId, category, month, year) key, and returns the stored
		// record with its id assigned.
		UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error)

		// DeleteBudget removes the budget by id; deleting an unknown id is
		// not an error.
		DeleteBudget(ctx context.Context, userID, id string) error
	}

	TransactionFetcher interface {
		// FetchTransactions returns all transactions owned by the user.
		FetchTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	}

	TransactionPersister interface {
		// CreateTransaction persists the transaction and returns it with
		// its id assigned.
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)

		// DeleteTransaction removes the transaction by id; unknown ids are
		// not an error.
		DeleteTransaction(ctx context.Context, userID, id string) error
	}
)
