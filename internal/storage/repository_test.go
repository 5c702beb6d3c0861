package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"onlyfunds/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository_UpsertBudget(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	b := core.Budget{
		UserID:   "alice",
		Category: core.Food,
		Amount:   core.Money{Cents: 35000},
		Month:    3,
		Year:     2026,
	}
	first, err := repo.UpsertBudget(ctx, b)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if first.ID == "" {
		t.Fatal("insert should assign an id")
	}

	// Same user/category/month/year updates in place
	b.Amount.Cents = 42000
	second, err := repo.UpsertBudget(ctx, b)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert should keep id %s, got %s", first.ID, second.ID)
	}

	budgets, err := repo.FetchBudgets(ctx, "alice")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(budgets))
	}
	if budgets[0].Amount.Cents != 42000 {
		t.Errorf("expected updated amount 42000, got %d", budgets[0].Amount.Cents)
	}

	// Different month is a separate row
	b.Month = 4
	third, err := repo.UpsertBudget(ctx, b)
	if err != nil {
		t.Fatalf("insert for new month failed: %v", err)
	}
	if third.ID == first.ID {
		t.Error("different month should get its own row")
	}
}

func TestRepository_SoftDeleteBudget(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	saved, err := repo.UpsertBudget(ctx, core.Budget{
		UserID:   "alice",
		Category: core.Transport,
		Amount:   core.Money{Cents: 8000},
		Month:    3,
		Year:     2026,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := repo.DeleteBudget(ctx, "alice", saved.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	budgets, err := repo.FetchBudgets(ctx, "alice")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(budgets) != 0 {
		t.Errorf("soft-deleted budget should not be fetched, got %d", len(budgets))
	}

	// The row stays visible to the sync machinery as a pending delete
	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("get pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending row, got %d", len(pending))
	}
	if !pending[0].Deleted {
		t.Error("pending row should be flagged as deleted")
	}

	// Deleting with the wrong user is a no-op
	saved2, _ := repo.UpsertBudget(ctx, core.Budget{
		UserID:   "bob",
		Category: core.Food,
		Amount:   core.Money{Cents: 1000},
		Month:    3,
		Year:     2026,
	})
	if err := repo.DeleteBudget(ctx, "alice", saved2.ID); err != nil {
		t.Fatalf("cross-user delete errored: %v", err)
	}
	bobBudgets, _ := repo.FetchBudgets(ctx, "bob")
	if len(bobBudgets) != 1 {
		t.Error("cross-user delete should not remove the row")
	}
}

func TestRepository_TransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	saved, err := repo.CreateTransaction(ctx, core.Transaction{
		UserID:   "alice",
		Category: core.Shopping,
		Amount:   core.Money{Cents: 2599},
		Type:     core.Expense,
		Date:     core.Date{Time: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	transactions, err := repo.FetchTransactions(ctx, "alice")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}
	got := transactions[0]
	if got.ID != saved.ID {
		t.Errorf("expected id %s, got %s", saved.ID, got.ID)
	}
	if got.Amount.Cents != 2599 {
		t.Errorf("expected 2599 cents, got %d", got.Amount.Cents)
	}
	if got.Type != core.Expense {
		t.Errorf("expected expense, got %s", got.Type)
	}
	if got.Date.Format("2006-01-02") != "2026-03-15" {
		t.Errorf("date did not survive round trip: %s", got.Date.Format("2006-01-02"))
	}
}

func TestRepository_MarkSyncedAndPurge(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	saved, err := repo.CreateTransaction(ctx, core.Transaction{
		UserID:   "alice",
		Category: core.Food,
		Amount:   core.Money{Cents: 500},
		Type:     core.Expense,
		Date:     core.Date{Time: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	pending, _ := repo.GetPendingSync(ctx, 10)
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending row, got %d", len(pending))
	}
	id := pending[0].ID

	if err := repo.MarkSynced(ctx, EntityTransaction, id, "remote-abc"); err != nil {
		t.Fatalf("mark synced failed: %v", err)
	}
	pending, _ = repo.GetPendingSync(ctx, 10)
	if len(pending) != 0 {
		t.Errorf("synced row should leave the pending set, got %d", len(pending))
	}
	remoteID, err := repo.RemoteID(ctx, EntityTransaction, id)
	if err != nil {
		t.Fatalf("remote id lookup failed: %v", err)
	}
	if remoteID != "remote-abc" {
		t.Errorf("expected remote id remote-abc, got %q", remoteID)
	}

	// Purge only removes soft-deleted rows
	if err := repo.Purge(ctx, EntityTransaction, id); err != nil {
		t.Fatalf("purge errored: %v", err)
	}
	if _, _, err := repo.GetTransaction(ctx, id); err != nil {
		t.Error("purge should not remove a live row")
	}

	if err := repo.DeleteTransaction(ctx, "alice", saved.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Purge(ctx, EntityTransaction, id); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if _, _, err := repo.GetTransaction(ctx, id); err == nil {
		t.Error("purged row should be gone")
	}
}

func TestRepository_RecurringLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rt := core.RecurringTransaction{
		UserID:      "alice",
		Description: "Rent",
		Category:    core.Utilities,
		Amount:      core.Money{Cents: 95000},
		Type:        core.Expense,
		Every:       core.Monthly,
		StartDate:   core.Date{Time: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	id, err := repo.CreateRecurring(ctx, rt)
	if err != nil {
		t.Fatalf("create recurring failed: %v", err)
	}

	list, err := repo.ListRecurring(ctx, "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 template, got %d", len(list))
	}
	if list[0].Description != "Rent" || list[0].Every != core.Monthly {
		t.Errorf("template did not survive round trip: %+v", list[0])
	}
	if !list[0].EndDate.IsZero() {
		t.Error("missing end date should come back zero")
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	active, err := repo.GetActiveRecurringForProcessing(ctx, now)
	if err != nil {
		t.Fatalf("active query failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active template, got %d", len(active))
	}

	last, err := repo.LastExecution(ctx, id)
	if err != nil {
		t.Fatalf("last execution failed: %v", err)
	}
	if !last.IsZero() {
		t.Error("never-executed template should report zero time")
	}
	if err := repo.UpdateRecurringLastExecution(ctx, id, now); err != nil {
		t.Fatalf("update last execution failed: %v", err)
	}
	last, _ = repo.LastExecution(ctx, id)
	if last.IsZero() {
		t.Error("last execution should be recorded")
	}

	if err := repo.DeactivateRecurring(ctx, "alice", id); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	active, _ = repo.GetActiveRecurringForProcessing(ctx, now)
	if len(active) != 0 {
		t.Errorf("deactivated template should not be processed, got %d", len(active))
	}
}

func TestRepository_RecurringBeforeStartDateNotActive(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.CreateRecurring(ctx, core.RecurringTransaction{
		UserID:      "alice",
		Description: "Gym",
		Category:    core.Health,
		Amount:      core.Money{Cents: 3000},
		Type:        core.Expense,
		Every:       core.Monthly,
		StartDate:   core.Date{Time: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("create recurring failed: %v", err)
	}

	active, err := repo.GetActiveRecurringForProcessing(ctx, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("active query failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("template before its start date should not be active, got %d", len(active))
	}
}
