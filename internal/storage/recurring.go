package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/core"
)

const recurringColumns = "id, type, category, description, amount_cents, interval, next_date"

func (r *Repository) InsertRule(ctx context.Context, rule core.RecurringRule) (core.RecurringRule, error) {
	if rule.Interval == "" {
		rule.Interval = core.IntervalMonthly
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO recurring (type, category, description, amount_cents, interval, next_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(rule.Type), rule.Category, rule.Description, rule.Amount.Cents,
		string(rule.Interval), rule.NextDate.Format())
	if err != nil {
		return core.RecurringRule{}, fmt.Errorf("insert recurring rule: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.RecurringRule{}, fmt.Errorf("recurring rule id: %w", err)
	}
	rule.ID = id

	slog.InfoContext(ctx, "Recurring rule saved",
		"id", rule.ID,
		"category", rule.Category,
		"interval", rule.Interval,
		"next_date", rule.NextDate.Format())

	return rule, nil
}

func (r *Repository) UpdateRule(ctx context.Context, rule core.RecurringRule) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring
		SET type = ?, category = ?, description = ?, amount_cents = ?, interval = ?, next_date = ?
		WHERE id = ?`,
		string(rule.Type), rule.Category, rule.Description, rule.Amount.Cents,
		string(rule.Interval), rule.NextDate.Format(), rule.ID)
	if err != nil {
		return fmt.Errorf("update recurring rule: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteRule(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM recurring WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete recurring rule: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) GetRule(ctx context.Context, id int64) (core.RecurringRule, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recurringColumns+" FROM recurring WHERE id = ?", id)

	rule, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.RecurringRule{}, ErrNotFound
	}
	if err != nil {
		return core.RecurringRule{}, fmt.Errorf("get recurring rule: %w", err)
	}
	return rule, nil
}

// ListRules returns every rule ordered by next occurrence, then id.
func (r *Repository) ListRules(ctx context.Context) ([]core.RecurringRule, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recurringColumns+" FROM recurring ORDER BY next_date, id")
	if err != nil {
		return nil, fmt.Errorf("list recurring rules: %w", err)
	}
	defer rows.Close()

	var rules []core.RecurringRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recurring rules: %w", err)
	}
	return rules, nil
}

// PostOccurrences materializes a rule's due transactions and advances its
// next_date in one database transaction. A crash mid-pass can therefore
// never leave next_date stale relative to rows already posted.
func (r *Repository) PostOccurrences(ctx context.Context, ruleID int64, txns []core.Transaction, next core.Date) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin posting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (date, type, category, description, amount_cents, account)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare occurrence insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range txns {
		if _, err := stmt.ExecContext(ctx,
			t.Date.Format(), string(t.Type), t.Category, t.Description,
			t.Amount.Cents, t.Account); err != nil {
			return fmt.Errorf("insert occurrence: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE recurring SET next_date = ? WHERE id = ?", next.Format(), ruleID); err != nil {
		return fmt.Errorf("advance next_date: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit posting transaction: %w", err)
	}

	slog.InfoContext(ctx, "Recurring occurrences posted",
		"rule_id", ruleID,
		"posted", len(txns),
		"next_date", next.Format())
	return nil
}

func scanRule(row rowScanner) (core.RecurringRule, error) {
	var (
		rule     core.RecurringRule
		txType   string
		interval string
		nextDate string
	)
	if err := row.Scan(&rule.ID, &txType, &rule.Category, &rule.Description,
		&rule.Amount.Cents, &interval, &nextDate); err != nil {
		return core.RecurringRule{}, err
	}

	d, err := core.ParseDate(nextDate)
	if err != nil {
		return core.RecurringRule{}, fmt.Errorf("stored next_date %q: %w", nextDate, err)
	}
	rule.Type = core.TxType(txType)
	rule.Interval = core.Interval(interval)
	rule.NextDate = d
	return rule, nil
}
