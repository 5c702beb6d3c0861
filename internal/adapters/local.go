// Package adapters assembles backend implementations of the remote ports
// out of lower-level pieces.
package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"onlyfunds/internal/amqp"
	"onlyfunds/internal/core"
	"onlyfunds/internal/storage"
)

// LocalBackend persists to the local SQLite database and schedules each
// write for a push to the remote provider through the message queue. The
// local database is the source of truth: a failed publish is logged, not
// returned, because the worker's periodic pending scan picks the row up
// anyway.
type LocalBackend struct {
	repo  *storage.Repository
	queue *amqp.Client
}

// NewLocalBackend wires the repository to the queue. The queue may be nil,
// in which case writes stay local until the pending scan runs.
func NewLocalBackend(repo *storage.Repository, queue *amqp.Client) *LocalBackend {
	return &LocalBackend{repo: repo, queue: queue}
}

func (l *LocalBackend) FetchBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	return l.repo.FetchBudgets(ctx, userID)
}

func (l *LocalBackend) FetchTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	return l.repo.FetchTransactions(ctx, userID)
}

func (l *LocalBackend) UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	saved, err := l.repo.UpsertBudget(ctx, b)
	if err != nil {
		return core.Budget{}, err
	}
	l.scheduleSync(ctx, storage.EntityBudget, amqp.OpUpsert, saved.ID)
	return saved, nil
}

func (l *LocalBackend) DeleteBudget(ctx context.Context, userID, id string) error {
	if err := l.repo.DeleteBudget(ctx, userID, id); err != nil {
		return err
	}
	l.scheduleSync(ctx, storage.EntityBudget, amqp.OpDelete, id)
	return nil
}

func (l *LocalBackend) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	saved, err := l.repo.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, err
	}
	l.scheduleSync(ctx, storage.EntityTransaction, amqp.OpUpsert, saved.ID)
	return saved, nil
}

func (l *LocalBackend) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := l.repo.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	l.scheduleSync(ctx, storage.EntityTransaction, amqp.OpDelete, id)
	return nil
}

// scheduleSync publishes a sync message for a local row. The worker loads
// the row itself, so the message only needs entity, op and id.
func (l *LocalBackend) scheduleSync(ctx context.Context, entity, op, id string) {
	if l.queue == nil {
		return
	}
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Cannot schedule sync for non-numeric id",
			"entity", entity, "op", op, "id", id)
		return
	}
	msg := amqp.NewSyncMessage(entity, op, numID, 1)
	if err := l.queue.PublishSync(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Sync publish failed, pending scan will retry",
			"entity", entity,
			"op", op,
			"id", id,
			"error", err)
	}
}

// Repo exposes the underlying repository for callers that need direct
// access, like the recurring endpoints.
func (l *LocalBackend) Repo() *storage.Repository {
	return l.repo
}

// Close releases the repository and queue connections.
func (l *LocalBackend) Close() error {
	var firstErr error
	if l.queue != nil {
		if err := l.queue.Close(); err != nil {
			firstErr = fmt.Errorf("close queue: %w", err)
		}
	}
	if err := l.repo.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close repository: %w", err)
	}
	return firstErr
}
