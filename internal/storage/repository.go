// Package storage is the local SQLite repository behind the sqlite backend.
// Writes land here first; the sync worker pushes them to the remote provider
// afterwards.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"onlyfunds/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// Sync states for locally written rows.
const (
	SyncPending       = "pending"
	SyncSynced        = "synced"
	SyncError         = "error"
	SyncPendingDelete = "pending_delete"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// FetchBudgets implements remote.BudgetFetcher against the local database.
func (r *Repository) FetchBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, category, amount_cents, month, year
		FROM budgets
		WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var (
			id       int64
			b        core.Budget
			category string
		)
		if err := rows.Scan(&id, &b.UserID, &category, &b.Amount.Cents, &b.Month, &b.Year); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.ID = strconv.FormatInt(id, 10)
		b.Category = core.ParseCategory(category)
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpsertBudget implements remote.BudgetPersister. The partial unique index
// on (user_id, category, month, year) makes the conflict clause the upsert.
func (r *Repository) UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO budgets (user_id, category, amount_cents, month, year, sync_status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, category, month, year) WHERE deleted_at IS NULL
		DO UPDATE SET
			amount_cents = excluded.amount_cents,
			version = budgets.version + 1,
			sync_status = ?,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		b.UserID, string(b.Category), b.Amount.Cents, b.Month, b.Year, SyncPending, SyncPending)

	var id int64
	if err := row.Scan(&id); err != nil {
		return core.Budget{}, fmt.Errorf("upsert budget: %w", err)
	}
	b.ID = strconv.FormatInt(id, 10)

	slog.InfoContext(ctx, "Budget saved to SQLite",
		"id", b.ID,
		"category", b.Category,
		"amount_cents", b.Amount.Cents,
		"month", b.Month,
		"year", b.Year)

	return b, nil
}

// DeleteBudget soft deletes so the sync worker can replay the deletion
// against the remote provider. Unknown ids are a no-op.
func (r *Repository) DeleteBudget(ctx context.Context, userID, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("parse budget id %q: %w", id, err)
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE budgets
		SET deleted_at = CURRENT_TIMESTAMP, sync_status = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL`,
		SyncPendingDelete, numID, userID)
	if err != nil {
		return fmt.Errorf("soft delete budget: %w", err)
	}
	return nil
}

// GetBudget loads one budget row by numeric id, including soft-deleted
// rows (the sync worker needs those to replay deletions).
func (r *Repository) GetBudget(ctx context.Context, id int64) (core.Budget, string, error) {
	var (
		b        core.Budget
		category string
		status   string
	)
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, category, amount_cents, month, year, sync_status
		FROM budgets WHERE id = ?`, id)
	if err := row.Scan(&b.UserID, &category, &b.Amount.Cents, &b.Month, &b.Year, &status); err != nil {
		return core.Budget{}, "", fmt.Errorf("get budget %d: %w", id, err)
	}
	b.ID = strconv.FormatInt(id, 10)
	b.Category = core.ParseCategory(category)
	return b, status, nil
}

// FetchTransactions implements remote.TransactionFetcher against the local
// database.
func (r *Repository) FetchTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, category, amount_cents, type, date
		FROM transactions
		WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		id            int64
		t             core.Transaction
		category, typ string
		date          string
	)
	if err := rows.Scan(&id, &t.UserID, &category, &t.Amount.Cents, &typ, &date); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", date, err)
	}
	t.ID = strconv.FormatInt(id, 10)
	t.Category = core.ParseCategory(category)
	t.Type = core.TransactionType(typ)
	t.Date = core.Date{Time: parsed}
	return t, nil
}

// CreateTransaction implements remote.TransactionPersister locally.
func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, category, amount_cents, type, date, sync_status)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		t.UserID, string(t.Category), t.Amount.Cents, string(t.Type), t.Date.Format(dateLayout), SyncPending)

	var id int64
	if err := row.Scan(&id); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	t.ID = strconv.FormatInt(id, 10)

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"category", t.Category,
		"type", t.Type,
		"amount_cents", t.Amount.Cents)

	return t, nil
}

// DeleteTransaction soft deletes; unknown ids are a no-op.
func (r *Repository) DeleteTransaction(ctx context.Context, userID, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("parse transaction id %q: %w", id, err)
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE transactions
		SET deleted_at = CURRENT_TIMESTAMP, sync_status = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL`,
		SyncPendingDelete, numID, userID)
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	return nil
}

// GetTransaction loads one transaction row by numeric id, including
// soft-deleted rows.
func (r *Repository) GetTransaction(ctx context.Context, id int64) (core.Transaction, string, error) {
	var (
		t             core.Transaction
		category, typ string
		date          string
		status        string
	)
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, category, amount_cents, type, date, sync_status
		FROM transactions WHERE id = ?`, id)
	if err := row.Scan(&t.UserID, &category, &t.Amount.Cents, &typ, &date, &status); err != nil {
		return core.Transaction{}, "", fmt.Errorf("get transaction %d: %w", id, err)
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.Transaction{}, "", fmt.Errorf("parse transaction date %q: %w", date, err)
	}
	t.ID = strconv.FormatInt(id, 10)
	t.Category = core.ParseCategory(category)
	t.Type = core.TransactionType(typ)
	t.Date = core.Date{Time: parsed}
	return t, status, nil
}
