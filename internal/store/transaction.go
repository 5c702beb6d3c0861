package store

import (
	"sync"

	"onlyfunds/internal/core"
)

// TransactionStore is an ordered in-memory collection of transaction
// records. Fetches replace the collection wholesale with the same
// sequence-guard semantics as BudgetStore.
type TransactionStore struct {
	mu           sync.Mutex
	transactions []core.Transaction

	fetchSeq uint64
	applied  uint64
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

// NextFetch issues a sequence number for an in-flight fetch.
func (s *TransactionStore) NextFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchSeq++
	return s.fetchSeq
}

// Replace installs a freshly fetched collection unless the sequence is
// stale.
func (s *TransactionStore) Replace(seq uint64, transactions []core.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.transactions = append([]core.Transaction(nil), transactions...)
	return true
}

// Add appends a transaction.
func (s *TransactionStore) Add(t core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
}

// Remove deletes the transaction with the given id; no-op when absent.
func (s *TransactionStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the collection in insertion order.
func (s *TransactionStore) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// ForPeriod returns the transactions dated within the given month and year.
func (s *TransactionStore) ForPeriod(month, year int) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.Date.InPeriod(month, year) {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of stored transactions.
func (s *TransactionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}
