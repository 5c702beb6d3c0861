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

// TransactionService handles the add-transaction and remove-transaction
// operations.
type TransactionService struct {
	stores   *store.Registry
	provider remote.Provider
}

func NewTransactionService(stores *store.Registry, provider remote.Provider) *TransactionService {
	return &TransactionService{stores: stores, provider: provider}
}

// AddTransaction validates the input, persists it through the backend and
// appends it to the user's transaction store.
func (s *TransactionService) AddTransaction(ctx context.Context, userID string, in validate.TransactionInput) (core.Transaction, validate.FieldErrors, error) {
	t, fieldErrs := in.Validate(userID)
	if fieldErrs != nil {
		return core.Transaction{}, fieldErrs, nil
	}

	stored, err := s.provider.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, nil, fmt.Errorf("persist transaction: %w", err)
	}

	s.stores.For(userID).Transactions.Add(stored)
	slog.InfoContext(ctx, "Transaction added",
		"id", stored.ID,
		"category", stored.Category,
		"type", stored.Type,
		"amount_cents", stored.Amount.Cents)

	return stored, nil, nil
}

// RemoveTransaction deletes the transaction from the backend and the store;
// unknown ids are a no-op.
func (s *TransactionService) RemoveTransaction(ctx context.Context, userID, id string) error {
	if err := s.provider.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	removed := s.stores.For(userID).Transactions.Remove(id)
	slog.InfoContext(ctx, "Transaction removed", "id", id, "was_present", removed)
	return nil
}
