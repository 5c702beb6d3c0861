// Package worker pushes local database rows to the remote provider. It
// consumes sync messages from the queue and runs a periodic scan over rows
// still marked pending, so a lost message never strands a record.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"onlyfunds/internal/amqp"
	"onlyfunds/internal/remote"
	"onlyfunds/internal/storage"
)

// SyncWorker replays local writes against the remote provider.
type SyncWorker struct {
	storage   *storage.Repository
	remote    remote.Provider
	batchSize int
}

func NewSyncWorker(storage *storage.Repository, remote remote.Provider, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		remote:    remote,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sync message from AMQP. The message
// only names the row; the current state is loaded from the local database,
// so a stale message replays whatever the row looks like now.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"entity", msg.Entity,
		"op", msg.Op,
		"id", msg.ID)

	switch msg.Op {
	case amqp.OpUpsert:
		return w.syncRow(ctx, msg.Entity, msg.ID)
	case amqp.OpDelete:
		return w.deleteRemote(ctx, msg.Entity, msg.ID)
	default:
		return fmt.Errorf("unknown sync op %q", msg.Op)
	}
}

// syncRow pushes one local row to the remote provider and records the
// remote id it came back with.
func (w *SyncWorker) syncRow(ctx context.Context, entity string, id int64) error {
	switch entity {
	case storage.EntityBudget:
		b, status, err := w.storage.GetBudget(ctx, id)
		if err != nil {
			return fmt.Errorf("get budget from storage: %w", err)
		}
		if status == storage.SyncPendingDelete {
			return w.deleteRemote(ctx, entity, id)
		}

		saved, err := w.remote.UpsertBudget(ctx, b)
		if err != nil {
			if markErr := w.storage.MarkSyncError(ctx, entity, id); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "entity", entity, "id", id, "error", markErr)
			}
			return fmt.Errorf("push budget to remote: %w", err)
		}
		return w.storage.MarkSynced(ctx, entity, id, saved.ID)

	case storage.EntityTransaction:
		t, status, err := w.storage.GetTransaction(ctx, id)
		if err != nil {
			return fmt.Errorf("get transaction from storage: %w", err)
		}
		if status == storage.SyncPendingDelete {
			return w.deleteRemote(ctx, entity, id)
		}
		if status == storage.SyncSynced {
			// Remote already has the row under a known id; recreate would
			// duplicate it.
			slog.InfoContext(ctx, "Row already synced, skipping", "entity", entity, "id", id)
			return nil
		}

		saved, err := w.remote.CreateTransaction(ctx, t)
		if err != nil {
			if markErr := w.storage.MarkSyncError(ctx, entity, id); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "entity", entity, "id", id, "error", markErr)
			}
			return fmt.Errorf("push transaction to remote: %w", err)
		}
		return w.storage.MarkSynced(ctx, entity, id, saved.ID)

	default:
		return fmt.Errorf("unknown sync entity %q", entity)
	}
}

// deleteRemote removes the remote copy of a soft-deleted row, then purges
// the local row for good. A row that never reached the remote is just
// purged.
func (w *SyncWorker) deleteRemote(ctx context.Context, entity string, id int64) error {
	remoteID, err := w.storage.RemoteID(ctx, entity, id)
	if err != nil {
		return fmt.Errorf("get remote id: %w", err)
	}

	if remoteID != "" {
		switch entity {
		case storage.EntityBudget:
			b, _, err := w.storage.GetBudget(ctx, id)
			if err != nil {
				return fmt.Errorf("get budget for delete: %w", err)
			}
			if err := w.remote.DeleteBudget(ctx, b.UserID, remoteID); err != nil {
				return fmt.Errorf("delete budget from remote: %w", err)
			}
		case storage.EntityTransaction:
			t, _, err := w.storage.GetTransaction(ctx, id)
			if err != nil {
				return fmt.Errorf("get transaction for delete: %w", err)
			}
			if err := w.remote.DeleteTransaction(ctx, t.UserID, remoteID); err != nil {
				return fmt.Errorf("delete transaction from remote: %w", err)
			}
		default:
			return fmt.Errorf("unknown sync entity %q", entity)
		}
	}

	if err := w.storage.Purge(ctx, entity, id); err != nil {
		return fmt.Errorf("purge local row: %w", err)
	}

	slog.InfoContext(ctx, "Deleted row from remote",
		"entity", entity,
		"id", id,
		"remote_id", remoteID)
	return nil
}

// ProcessPending pushes any rows that haven't reached the remote yet.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending rows: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending rows", "count", len(pending))

	for _, p := range pending {
		var err error
		if p.Deleted {
			err = w.deleteRemote(ctx, p.Entity, p.ID)
		} else {
			err = w.syncRow(ctx, p.Entity, p.ID)
		}
		if err != nil {
			slog.ErrorContext(ctx, "Failed to sync row",
				"entity", p.Entity,
				"id", p.ID,
				"error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck pushes pending rows at worker startup. This recovers
// from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	// Get a larger batch for startup check
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending rows for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending rows found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending rows on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		var err error
		if p.Deleted {
			err = w.deleteRemote(ctx, p.Entity, p.ID)
		} else {
			err = w.syncRow(ctx, p.Entity, p.ID)
		}
		if err != nil {
			slog.ErrorContext(ctx, "Failed to sync row during startup",
				"entity", p.Entity,
				"id", p.ID,
				"error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}
