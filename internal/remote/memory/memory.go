// Package memory implements the remote ports with an in-process store. It
// is the default backend for local development and the test double for the
// service layer.
package memory

import (
	"context"
	"fmt"
	"sync"

	"onlyfunds/internal/core"
)

type Store struct {
	mu           sync.Mutex
	budgets      []core.Budget
	transactions []core.Transaction
	nextID       int
}

func New() *Store {
	return &Store{}
}

// Seed preloads records, assigning ids to any record missing one.
func (s *Store) Seed(budgets []core.Budget, transactions []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range budgets {
		if b.ID == "" {
			b.ID = s.newID()
		}
		s.budgets = append(s.budgets, b)
	}
	for _, t := range transactions {
		if t.ID == "" {
			t.ID = s.newID()
		}
		s.transactions = append(s.transactions, t)
	}
}

func (s *Store) newID() string {
	s.nextID++
	return fmt.Sprintf("mem:%d", s.nextID)
}

// FetchBudgets implements remote.BudgetFetcher.
func (s *Store) FetchBudgets(_ context.Context, userID string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Budget
	for _, b := range s.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// UpsertBudget implements remote.BudgetPersister.
func (s *Store) UpsertBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := b.Key()
	for i, existing := range s.budgets {
		if existing.Key() == key {
			b.ID = existing.ID
			s.budgets[i] = b
			return b, nil
		}
	}
	if b.ID == "" {
		b.ID = s.newID()
	}
	s.budgets = append(s.budgets, b)
	return b, nil
}

// DeleteBudget implements remote.BudgetPersister.
func (s *Store) DeleteBudget(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.budgets {
		if b.ID == id && b.UserID == userID {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return nil
		}
	}
	return nil
}

// FetchTransactions implements remote.TransactionFetcher.
func (s *Store) FetchTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateTransaction implements remote.TransactionPersister.
func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = s.newID()
	}
	s.transactions = append(s.transactions, t)
	return t, nil
}

// DeleteTransaction implements remote.TransactionPersister.
func (s *Store) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id && t.UserID == userID {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return nil
}
