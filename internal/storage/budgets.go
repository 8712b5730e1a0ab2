package storage

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/core"
)

// SetBudget inserts or overwrites the target for one (month, category)
// pair. The UNIQUE constraint guarantees at most one row per pair.
func (r *Repository) SetBudget(ctx context.Context, b core.Budget) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (month, category, amount_cents)
		VALUES (?, ?, ?)
		ON CONFLICT (month, category) DO UPDATE SET amount_cents = excluded.amount_cents`,
		b.Month, b.Category, b.Amount.Cents); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"month", b.Month,
		"category", b.Category,
		"amount_cents", b.Amount.Cents)
	return nil
}

// ListBudgets returns the budgets for one month ordered by category.
// With an empty month it returns every budget ordered by month then
// category.
func (r *Repository) ListBudgets(ctx context.Context, month string) ([]core.Budget, error) {
	query := "SELECT id, month, category, amount_cents FROM budgets"
	var args []any
	if month != "" {
		query += " WHERE month = ?"
		args = append(args, month)
	}
	query += " ORDER BY month, category"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.ID, &b.Month, &b.Category, &b.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}
