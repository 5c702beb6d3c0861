package store

import "sync"

// Set is the pair of stores backing one user session.
type Set struct {
	Budgets      *BudgetStore
	Transactions *TransactionStore
}

// Registry hands out one store Set per user id. The server owns a single
// Registry; tests construct their own isolated instances.
type Registry struct {
	mu   sync.Mutex
	sets map[string]*Set
}

func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]*Set)}
}

// For returns the store set for the user, creating it on first use.
func (r *Registry) For(userID string) *Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[userID]
	if !ok {
		set = &Set{
			Budgets:      NewBudgetStore(),
			Transactions: NewTransactionStore(),
		}
		r.sets[userID] = set
	}
	return set
}

// Drop discards the stores for the user (logout).
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, userID)
}
