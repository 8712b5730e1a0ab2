// Package services holds the ledger's business logic: the recurring
// poster, entry validation and reporting aggregates.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/storage"
)

// RecurringPoster materializes due occurrences of recurring rules into
// ledger transactions and advances each rule's schedule.
type RecurringPoster struct {
	repo *storage.Repository
}

func NewRecurringPoster(repo *storage.Repository) *RecurringPoster {
	return &RecurringPoster{repo: repo}
}

// PlanOccurrences walks a rule's schedule up to and including now and
// returns the due occurrence dates plus the advanced next date. The
// boundary is inclusive: an occurrence scheduled for exactly now is due
// today, not tomorrow. For any interval other than monthly the walk
// stops after one occurrence, so unsupported intervals degrade to one
// posting per pass instead of looping forever.
func PlanOccurrences(rule core.RecurringRule, now core.Date) ([]core.Date, core.Date) {
	var due []core.Date
	cursor := rule.NextDate
	for !cursor.After(now) {
		due = append(due, cursor)
		if rule.Interval != core.IntervalMonthly {
			break
		}
		cursor = core.AddMonths(cursor, 1)
	}
	return due, cursor
}

// PostDue posts every due occurrence of every rule in one pass and
// returns the total number of transactions created. Rules with nothing
// due are left untouched. Each rule's postings and next_date advance
// commit atomically; a failing rule aborts the pass.
func (p *RecurringPoster) PostDue(ctx context.Context, now core.Date) (int, error) {
	rules, err := p.repo.ListRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("load recurring rules: %w", err)
	}

	slog.InfoContext(ctx, "Posting due recurring occurrences",
		"rules", len(rules),
		"now", now.Format())

	posted := 0
	for _, rule := range rules {
		due, next := PlanOccurrences(rule, now)
		if len(due) == 0 {
			continue
		}

		txns := make([]core.Transaction, len(due))
		for i, d := range due {
			txns[i] = core.Transaction{
				Date:        d,
				Type:        rule.Type,
				Category:    rule.Category,
				Description: rule.Description,
				Amount:      rule.Amount,
				Account:     core.RecurringAccount,
			}
		}

		if err := p.repo.PostOccurrences(ctx, rule.ID, txns, next); err != nil {
			return posted, fmt.Errorf("post rule %d: %w", rule.ID, err)
		}
		posted += len(txns)
	}

	slog.InfoContext(ctx, "Recurring pass complete", "posted", posted)
	return posted, nil
}
