// Package store holds the in-memory budget and transaction collections the
// progress engine reads from. Stores are plain injected instances; one pair
// exists per user session, owned by a Registry.
package store

import (
	"sync"

	"onlyfunds/internal/core"
)

// BudgetStore is an ordered in-memory collection of budget records. Fetches
// replace the collection wholesale; mutations upsert on the budget key. The
// store also owns the latest progress snapshot, replaced on every
// recomputation and never merged.
type BudgetStore struct {
	mu       sync.Mutex
	budgets  []core.Budget
	progress []core.BudgetProgress

	fetchSeq uint64 // last issued fetch sequence
	applied  uint64 // sequence of the last applied replacement
}

func NewBudgetStore() *BudgetStore {
	return &BudgetStore{}
}

// NextFetch issues a sequence number for an in-flight fetch. Replace rejects
// responses carrying a sequence older than one already applied, so a slow
// response cannot overwrite a newer collection.
func (s *BudgetStore) NextFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchSeq++
	return s.fetchSeq
}

// Replace installs a freshly fetched collection. It reports whether the
// replacement was applied; a stale sequence leaves the store unchanged.
func (s *BudgetStore) Replace(seq uint64, budgets []core.Budget) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.budgets = append([]core.Budget(nil), budgets...)
	return true
}

// Upsert inserts the budget or, when a record with the same
// (userId, category, month, year) key exists, replaces it in place keeping
// its position. Returns the stored record and whether a new one was created.
func (s *BudgetStore) Upsert(b core.Budget) (core.Budget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := b.Key()
	for i, existing := range s.budgets {
		if existing.Key() == key {
			if b.ID == "" {
				b.ID = existing.ID
			}
			s.budgets[i] = b
			return b, false
		}
	}
	s.budgets = append(s.budgets, b)
	return b, true
}

// Remove deletes the budget with the given id. Removing an absent id is a
// no-op.
func (s *BudgetStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.budgets {
		if b.ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the collection in insertion order.
func (s *BudgetStore) All() []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets...)
}

// ForPeriod returns the budgets for the given month and year.
func (s *BudgetStore) ForPeriod(month, year int) []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Budget
	for _, b := range s.budgets {
		if b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out
}

// Get returns the budget with the given id.
func (s *BudgetStore) Get(id string) (core.Budget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.budgets {
		if b.ID == id {
			return b, true
		}
	}
	return core.Budget{}, false
}

// Len returns the number of stored budgets.
func (s *BudgetStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.budgets)
}

// Recompute derives a fresh progress snapshot from the supplied transactions
// for the given period and installs it wholesale.
func (s *BudgetStore) Recompute(transactions []core.Transaction, month, year int) []core.BudgetProgress {
	s.mu.Lock()
	budgets := append([]core.Budget(nil), s.budgets...)
	s.mu.Unlock()

	progress := core.ComputeProgress(transactions, budgets, month, year)

	s.mu.Lock()
	s.progress = progress
	s.mu.Unlock()
	return append([]core.BudgetProgress(nil), progress...)
}

// Progress returns a copy of the latest snapshot produced by Recompute.
func (s *BudgetStore) Progress() []core.BudgetProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.BudgetProgress(nil), s.progress...)
}
