package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tally/internal/core"
)

// TransactionFilter narrows ListTransactions. Zero-valued fields are
// ignored; amount bounds are inclusive. Search matches description or
// account as a case-insensitive substring.
type TransactionFilter struct {
	From      core.Date
	To        core.Date
	Type      core.TxType
	Category  string
	MinAmount *core.Money
	MaxAmount *core.Money
	Search    string
}

func (f TransactionFilter) where() (string, []any) {
	var clauses []string
	var args []any

	if !f.From.IsZero() {
		clauses = append(clauses, "date >= ?")
		args = append(args, f.From.Format())
	}
	if !f.To.IsZero() {
		clauses = append(clauses, "date <= ?")
		args = append(args, f.To.Format())
	}
	if f.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	if f.MinAmount != nil {
		clauses = append(clauses, "amount_cents >= ?")
		args = append(args, f.MinAmount.Cents)
	}
	if f.MaxAmount != nil {
		clauses = append(clauses, "amount_cents <= ?")
		args = append(args, f.MaxAmount.Cents)
	}
	if f.Search != "" {
		clauses = append(clauses, "(description LIKE ? OR account LIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

const transactionColumns = "id, date, type, category, description, amount_cents, account, created_at"

// InsertTransaction stores one transaction and returns it with its
// assigned id. An empty account falls back to the default label.
func (r *Repository) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.Account == "" {
		t.Account = core.DefaultAccount
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (date, type, category, description, amount_cents, account)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.Date.Format(), string(t.Type), t.Category, t.Description, t.Amount.Cents, t.Account)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction id: %w", err)
	}
	t.ID = id

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"date", t.Date.Format(),
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return t, nil
}

// InsertTransactions stores a batch in a single database transaction.
// Either every row lands or none does; CSV import relies on this.
func (r *Repository) InsertTransactions(ctx context.Context, txns []core.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (date, type, category, description, amount_cents, account)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range txns {
		account := t.Account
		if account == "" {
			account = core.DefaultAccount
		}
		if _, err := stmt.ExecContext(ctx,
			t.Date.Format(), string(t.Type), t.Category, t.Description, t.Amount.Cents, account); err != nil {
			return fmt.Errorf("insert transaction batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction batch: %w", err)
	}

	slog.InfoContext(ctx, "Transaction batch saved", "count", len(txns))
	return nil
}

// UpdateTransaction overwrites every mutable field of the row with t's id.
func (r *Repository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, type = ?, category = ?, description = ?, amount_cents = ?, account = ?
		WHERE id = ?`,
		t.Date.Format(), string(t.Type), t.Category, t.Description, t.Amount.Cents, t.Account, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListTransactions returns matching rows newest first: date descending,
// ties broken by id descending.
func (r *Repository) ListTransactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error) {
	where, args := f.where()
	query := "SELECT " + transactionColumns + " FROM transactions" + where + " ORDER BY date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t         core.Transaction
		date      string
		txType    string
		createdAt string
	)
	if err := row.Scan(&t.ID, &date, &txType, &t.Category, &t.Description,
		&t.Amount.Cents, &t.Account, &createdAt); err != nil {
		return core.Transaction{}, err
	}

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	t.Date = d
	t.Type = core.TxType(txType)

	// created_at comes from sqlite's datetime('now')
	if ts, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		t.CreatedAt = ts
	}
	return t, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
