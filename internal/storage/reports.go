package storage

import (
	"context"
	"fmt"

	"tally/internal/core"
)

// TotalsByType sums matching transactions per type. Types with no
// matching rows report zero.
func (r *Repository) TotalsByType(ctx context.Context, f TransactionFilter) (expense, income core.Money, count int, err error) {
	where, args := f.where()
	query := `
		SELECT type, COALESCE(SUM(amount_cents), 0), COUNT(*)
		FROM transactions` + where + " GROUP BY type"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return core.Money{}, core.Money{}, 0, fmt.Errorf("totals by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			txType string
			cents  int64
			n      int
		)
		if err := rows.Scan(&txType, &cents, &n); err != nil {
			return core.Money{}, core.Money{}, 0, fmt.Errorf("scan totals: %w", err)
		}
		switch core.TxType(txType) {
		case core.Expense:
			expense = core.MoneyFromCents(cents)
		case core.Income:
			income = core.MoneyFromCents(cents)
		}
		count += n
	}
	if err := rows.Err(); err != nil {
		return core.Money{}, core.Money{}, 0, fmt.Errorf("totals by type: %w", err)
	}
	return expense, income, count, nil
}

// MonthlyTotals sums matching transactions per (month, type), ordered by
// month ascending. The month key is the leading "YYYY-MM" of the stored
// ISO date.
func (r *Repository) MonthlyTotals(ctx context.Context, f TransactionFilter) ([]core.MonthTypeTotal, error) {
	where, args := f.where()
	query := `
		SELECT substr(date, 1, 7) AS month, type, COALESCE(SUM(amount_cents), 0)
		FROM transactions` + where + `
		GROUP BY month, type
		ORDER BY month, type`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []core.MonthTypeTotal
	for rows.Next() {
		var (
			t     core.MonthTypeTotal
			typ   string
			cents int64
		)
		if err := rows.Scan(&t.Month, &typ, &cents); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		t.Type = core.TxType(typ)
		t.Amount = core.MoneyFromCents(cents)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	return totals, nil
}

// CategoryTotals sums matching transactions per category, largest first.
func (r *Repository) CategoryTotals(ctx context.Context, f TransactionFilter) ([]core.CategoryTotal, error) {
	where, args := f.where()
	query := `
		SELECT category, COALESCE(SUM(amount_cents), 0) AS total
		FROM transactions` + where + `
		GROUP BY category
		ORDER BY total DESC, category`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var (
			t     core.CategoryTotal
			cents int64
		)
		if err := rows.Scan(&t.Category, &cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		t.Amount = core.MoneyFromCents(cents)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	return totals, nil
}
