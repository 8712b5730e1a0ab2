package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// UpsertCategory adds a label to the managed set. Existing labels are
// left alone, so typing a known name during entry is a no-op.
func (r *Repository) UpsertCategory(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO categories (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// DeleteCategory removes a label from the managed set only. Transactions
// referencing the name keep their free-standing text value.
func (r *Repository) DeleteCategory(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Category removed from managed set", "name", name)
	return nil
}

// ListCategories returns the managed labels sorted ascending.
func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}
