package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"onlyfunds/internal/core"
)

// CreateRecurring stores a recurring transaction template.
func (r *Repository) CreateRecurring(ctx context.Context, rt core.RecurringTransaction) (int64, error) {
	var endDate interface{}
	if !rt.EndDate.IsZero() {
		endDate = rt.EndDate.Format(dateLayout)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO recurring_transactions
			(user_id, description, category, amount_cents, type, start_date, end_date, every)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		rt.UserID, rt.Description, string(rt.Category), rt.Amount.Cents,
		string(rt.Type), rt.StartDate.Format(dateLayout), endDate, string(rt.Every))

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("create recurring transaction: %w", err)
	}
	return id, nil
}

// ListRecurring returns the user's templates, active first.
func (r *Repository) ListRecurring(ctx context.Context, userID string) ([]core.RecurringTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, description, category, amount_cents, type, start_date, end_date, every
		FROM recurring_transactions
		WHERE user_id = ?
		ORDER BY active DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query recurring transactions: %w", err)
	}
	defer rows.Close()
	return scanRecurringRows(rows)
}

// GetActiveRecurringForProcessing returns every active template whose
// window contains now, across all users. The processor filters by dueness.
func (r *Repository) GetActiveRecurringForProcessing(ctx context.Context, now time.Time) ([]core.RecurringTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, description, category, amount_cents, type, start_date, end_date, every
		FROM recurring_transactions
		WHERE active = 1
		  AND start_date <= ?
		  AND (end_date IS NULL OR end_date >= ?)
		ORDER BY id`,
		now.Format(dateLayout), now.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query active recurring transactions: %w", err)
	}
	defer rows.Close()
	return scanRecurringRows(rows)
}

// LastExecution returns the template's last materialization time, zero when
// it has never run.
func (r *Repository) LastExecution(ctx context.Context, id int64) (time.Time, error) {
	var last sql.NullTime
	row := r.db.QueryRowContext(ctx,
		`SELECT last_execution_date FROM recurring_transactions WHERE id = ?`, id)
	if err := row.Scan(&last); err != nil {
		return time.Time{}, fmt.Errorf("last execution of recurring %d: %w", id, err)
	}
	if !last.Valid {
		return time.Time{}, nil
	}
	return last.Time, nil
}

// UpdateRecurringLastExecution records a materialization.
func (r *Repository) UpdateRecurringLastExecution(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE recurring_transactions SET last_execution_date = ? WHERE id = ?`, at, id); err != nil {
		return fmt.Errorf("update last execution of recurring %d: %w", id, err)
	}
	return nil
}

// DeactivateRecurring stops future materializations without losing history.
func (r *Repository) DeactivateRecurring(ctx context.Context, userID string, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE recurring_transactions SET active = 0 WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("deactivate recurring %d: %w", id, err)
	}
	return nil
}

func scanRecurringRows(rows *sql.Rows) ([]core.RecurringTransaction, error) {
	var out []core.RecurringTransaction
	for rows.Next() {
		var (
			rt            core.RecurringTransaction
			category, typ string
			start         string
			end           sql.NullString
			every         string
		)
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.Description, &category, &rt.Amount.Cents, &typ, &start, &end, &every); err != nil {
			return nil, fmt.Errorf("scan recurring transaction: %w", err)
		}
		startDate, err := time.Parse(dateLayout, start)
		if err != nil {
			return nil, fmt.Errorf("parse recurring start date %q: %w", start, err)
		}
		rt.StartDate = core.Date{Time: startDate}
		if end.Valid {
			endDate, err := time.Parse(dateLayout, end.String)
			if err != nil {
				return nil, fmt.Errorf("parse recurring end date %q: %w", end.String, err)
			}
			rt.EndDate = core.Date{Time: endDate}
		}
		rt.Category = core.ParseCategory(category)
		rt.Type = core.TransactionType(typ)
		rt.Every = core.RepetitionType(every)
		out = append(out, rt)
	}
	return out, rows.Err()
}
