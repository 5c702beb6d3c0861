package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Entities referenced by sync records and AMQP messages.
const (
	EntityBudget      = "budget"
	EntityTransaction = "transaction"
)

// PendingSync identifies one local row awaiting a push to the remote
// provider.
type PendingSync struct {
	Entity    string
	ID        int64
	Version   int64
	Deleted   bool
	RemoteID  string
	CreatedAt time.Time
}

// GetPendingSync returns up to limit rows (budgets first, then
// transactions) whose local state has not reached the remote provider.
// This backs the worker's periodic backup scan for lost messages.
func (r *Repository) GetPendingSync(ctx context.Context, limit int) ([]PendingSync, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT 'budget' AS entity, id, version, sync_status, COALESCE(remote_id, ''), created_at
		FROM budgets
		WHERE sync_status IN (?, ?, ?)
		UNION ALL
		SELECT 'transaction', id, version, sync_status, COALESCE(remote_id, ''), created_at
		FROM transactions
		WHERE sync_status IN (?, ?, ?)
		ORDER BY created_at
		LIMIT ?`,
		SyncPending, SyncError, SyncPendingDelete,
		SyncPending, SyncError, SyncPendingDelete,
		limit)
	if err != nil {
		return nil, fmt.Errorf("query pending sync rows: %w", err)
	}
	defer rows.Close()

	var out []PendingSync
	for rows.Next() {
		var (
			p      PendingSync
			status string
		)
		if err := rows.Scan(&p.Entity, &p.ID, &p.Version, &status, &p.RemoteID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending sync row: %w", err)
		}
		p.Deleted = status == SyncPendingDelete
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced records a successful push, storing the remote document id for
// later deletes.
func (r *Repository) MarkSynced(ctx context.Context, entity string, id int64, remoteID string) error {
	table, err := tableFor(entity)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET sync_status = ?, remote_id = ? WHERE id = ?`, table),
		SyncSynced, remoteID, id)
	if err != nil {
		return fmt.Errorf("mark %s %d synced: %w", entity, id, err)
	}
	slog.InfoContext(ctx, "Row marked as synced", "entity", entity, "id", id, "remote_id", remoteID)
	return nil
}

// MarkSyncError flags a failed push; the backup scan retries it later.
func (r *Repository) MarkSyncError(ctx context.Context, entity string, id int64) error {
	table, err := tableFor(entity)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET sync_status = ? WHERE id = ?`, table),
		SyncError, id); err != nil {
		return fmt.Errorf("mark %s %d sync error: %w", entity, id, err)
	}
	return nil
}

// Purge hard-deletes a soft-deleted row once the remote deletion has been
// confirmed.
func (r *Repository) Purge(ctx context.Context, entity string, id int64) error {
	table, err := tableFor(entity)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND deleted_at IS NOT NULL`, table),
		id); err != nil {
		return fmt.Errorf("purge %s %d: %w", entity, id, err)
	}
	return nil
}

// RemoteID returns the stored remote document id for a row, if any.
func (r *Repository) RemoteID(ctx context.Context, entity string, id int64) (string, error) {
	table, err := tableFor(entity)
	if err != nil {
		return "", err
	}
	var remoteID string
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COALESCE(remote_id, '') FROM %s WHERE id = ?`, table), id)
	if err := row.Scan(&remoteID); err != nil {
		return "", fmt.Errorf("remote id of %s %d: %w", entity, id, err)
	}
	return remoteID, nil
}

func tableFor(entity string) (string, error) {
	switch entity {
	case EntityBudget:
		return "budgets", nil
	case EntityTransaction:
		return "transactions", nil
	default:
		return "", fmt.Errorf("unknown sync entity %q", entity)
	}
}
