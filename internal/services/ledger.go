package services

import (
	"context"
	"fmt"
	"strings"

	"tally/internal/core"
	"tally/internal/storage"
)

// Ledger validates user input and orchestrates writes against the store.
// Validation failures abort the operation before any state changes.
type Ledger struct {
	repo *storage.Repository
}

func NewLedger(repo *storage.Repository) *Ledger {
	return &Ledger{repo: repo}
}

// AddTransaction records a manual entry. Manual entry requires a
// category and a strictly positive amount; a category name not yet in
// the managed set is added implicitly.
func (l *Ledger) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.Category = strings.TrimSpace(t.Category)
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.Amount.Cents <= 0 {
		return core.Transaction{}, core.ErrInvalidAmount
	}

	if err := l.repo.UpsertCategory(ctx, t.Category); err != nil {
		return core.Transaction{}, fmt.Errorf("register category: %w", err)
	}
	return l.repo.InsertTransaction(ctx, t)
}

// UpdateTransaction edits a row in place.
func (l *Ledger) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	t.Category = strings.TrimSpace(t.Category)
	if err := t.Validate(); err != nil {
		return err
	}
	return l.repo.UpdateTransaction(ctx, t)
}

// DeleteTransaction removes a row. No other entity is affected.
func (l *Ledger) DeleteTransaction(ctx context.Context, id int64) error {
	return l.repo.DeleteTransaction(ctx, id)
}

// ImportTransactions inserts pre-parsed rows from the import facility in
// one batch; the whole import lands or none of it does.
func (l *Ledger) ImportTransactions(ctx context.Context, txns []core.Transaction) error {
	for _, t := range txns {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("import row dated %s: %w", t.Date.Format(), err)
		}
	}
	return l.repo.InsertTransactions(ctx, txns)
}

// AddCategory adds a label to the managed set.
func (l *Ledger) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyCategory
	}
	return l.repo.UpsertCategory(ctx, name)
}

// DeleteCategory removes a label from the managed set. Transactions
// carrying the name keep it as plain text.
func (l *Ledger) DeleteCategory(ctx context.Context, name string) error {
	return l.repo.DeleteCategory(ctx, name)
}

func (l *Ledger) ListCategories(ctx context.Context) ([]string, error) {
	return l.repo.ListCategories(ctx)
}

// SetBudget upserts the target for a (month, category) pair.
func (l *Ledger) SetBudget(ctx context.Context, b core.Budget) error {
	b.Category = strings.TrimSpace(b.Category)
	if err := b.Validate(); err != nil {
		return err
	}
	return l.repo.SetBudget(ctx, b)
}

func (l *Ledger) ListBudgets(ctx context.Context, month string) ([]core.Budget, error) {
	return l.repo.ListBudgets(ctx, month)
}

// AddRule records a recurring rule.
func (l *Ledger) AddRule(ctx context.Context, rule core.RecurringRule) (core.RecurringRule, error) {
	rule.Category = strings.TrimSpace(rule.Category)
	if rule.Interval == "" {
		rule.Interval = core.IntervalMonthly
	}
	if err := rule.Validate(); err != nil {
		return core.RecurringRule{}, err
	}
	return l.repo.InsertRule(ctx, rule)
}

// UpdateRule edits a rule. The poster also mutates rules, but only to
// advance next_date.
func (l *Ledger) UpdateRule(ctx context.Context, rule core.RecurringRule) error {
	rule.Category = strings.TrimSpace(rule.Category)
	if err := rule.Validate(); err != nil {
		return err
	}
	return l.repo.UpdateRule(ctx, rule)
}

func (l *Ledger) DeleteRule(ctx context.Context, id int64) error {
	return l.repo.DeleteRule(ctx, id)
}

func (l *Ledger) ListRules(ctx context.Context) ([]core.RecurringRule, error) {
	return l.repo.ListRules(ctx)
}

func (l *Ledger) ListTransactions(ctx context.Context, f storage.TransactionFilter) ([]core.Transaction, error) {
	return l.repo.ListTransactions(ctx, f)
}

func (l *Ledger) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	return l.repo.GetTransaction(ctx, id)
}
