package services

import (
	"context"
	"path/filepath"
	"testing"

	"tally/internal/core"
	"tally/internal/storage"
)

func newTestRepo(t *testing.T) *storage.Repository {
	t.Helper()
	repo, err := storage.Open(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func monthlyRule(next core.Date) core.RecurringRule {
	return core.RecurringRule{
		Type:        core.Expense,
		Category:    "Rent",
		Description: "Monthly rent",
		Amount:      core.MoneyFromCents(80000),
		Interval:    core.IntervalMonthly,
		NextDate:    next,
	}
}

func TestPlanOccurrences(t *testing.T) {
	tests := []struct {
		name     string
		rule     core.RecurringRule
		now      core.Date
		wantDue  []core.Date
		wantNext core.Date
	}{
		{
			name:     "nothing due",
			rule:     monthlyRule(core.NewDate(2024, 5, 1)),
			now:      core.NewDate(2024, 4, 10),
			wantDue:  nil,
			wantNext: core.NewDate(2024, 5, 1),
		},
		{
			name:     "catch-up over three missed months",
			rule:     monthlyRule(core.NewDate(2024, 1, 15)),
			now:      core.NewDate(2024, 4, 10),
			wantDue:  []core.Date{core.NewDate(2024, 1, 15), core.NewDate(2024, 2, 15), core.NewDate(2024, 3, 15)},
			wantNext: core.NewDate(2024, 4, 15),
		},
		{
			name:     "due exactly today posts today",
			rule:     monthlyRule(core.NewDate(2024, 4, 10)),
			now:      core.NewDate(2024, 4, 10),
			wantDue:  []core.Date{core.NewDate(2024, 4, 10)},
			wantNext: core.NewDate(2024, 5, 10),
		},
		{
			name: "month-end clamp while catching up",
			rule: monthlyRule(core.NewDate(2024, 1, 31)),
			now:  core.NewDate(2024, 3, 15),
			// Jan 31 -> Feb 29 (leap) -> Mar 29 is beyond now
			wantDue:  []core.Date{core.NewDate(2024, 1, 31), core.NewDate(2024, 2, 29)},
			wantNext: core.NewDate(2024, 3, 29),
		},
		{
			name: "unsupported interval posts once and stops",
			rule: core.RecurringRule{
				Type: core.Expense, Category: "Other", Amount: core.MoneyFromCents(100),
				Interval: "weekly", NextDate: core.NewDate(2024, 1, 1),
			},
			now:      core.NewDate(2024, 4, 10),
			wantDue:  []core.Date{core.NewDate(2024, 1, 1)},
			wantNext: core.NewDate(2024, 1, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, next := PlanOccurrences(tt.rule, tt.now)
			if len(due) != len(tt.wantDue) {
				t.Fatalf("due = %v, want %v", dates(due), dates(tt.wantDue))
			}
			for i := range due {
				if !due[i].Equal(tt.wantDue[i]) {
					t.Errorf("due[%d] = %s, want %s", i, due[i].Format(), tt.wantDue[i].Format())
				}
			}
			if !next.Equal(tt.wantNext) {
				t.Errorf("next = %s, want %s", next.Format(), tt.wantNext.Format())
			}
		})
	}
}

func dates(ds []core.Date) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Format()
	}
	return out
}

func TestPostDueCatchUp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.InsertRule(ctx, monthlyRule(core.NewDate(2024, 1, 15))); err != nil {
		t.Fatalf("insert rule: %v", err)
	}

	poster := NewRecurringPoster(repo)
	now := core.NewDate(2024, 4, 10)

	posted, err := poster.PostDue(ctx, now)
	if err != nil {
		t.Fatalf("post due: %v", err)
	}
	if posted != 3 {
		t.Fatalf("posted = %d, want 3", posted)
	}

	txns, err := repo.ListTransactions(ctx, storage.TransactionFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	wantDates := []string{"2024-03-15", "2024-02-15", "2024-01-15"} // newest first
	if len(txns) != len(wantDates) {
		t.Fatalf("got %d transactions, want %d", len(txns), len(wantDates))
	}
	for i, tx := range txns {
		if tx.Date.Format() != wantDates[i] {
			t.Errorf("transaction %d dated %s, want %s", i, tx.Date.Format(), wantDates[i])
		}
		if tx.Account != core.RecurringAccount {
			t.Errorf("account = %q, want %q", tx.Account, core.RecurringAccount)
		}
		if tx.Description != "Monthly rent" || tx.Amount.Cents != 80000 {
			t.Errorf("occurrence fields not copied from rule: %+v", tx)
		}
	}

	rules, err := repo.ListRules(ctx)
	if err != nil {
		t.Fatalf("list rules: %v", err)
	}
	if got := rules[0].NextDate.Format(); got != "2024-04-15" {
		t.Errorf("next_date = %s, want 2024-04-15", got)
	}
}

func TestPostDueIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.InsertRule(ctx, monthlyRule(core.NewDate(2024, 2, 1))); err != nil {
		t.Fatalf("insert rule: %v", err)
	}

	poster := NewRecurringPoster(repo)
	now := core.NewDate(2024, 4, 10)

	first, err := poster.PostDue(ctx, now)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if first != 3 {
		t.Fatalf("first pass posted %d, want 3", first)
	}

	second, err := poster.PostDue(ctx, now)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if second != 0 {
		t.Errorf("second pass posted %d, want 0", second)
	}
}

func TestPostDueInclusiveBoundary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	now := core.NewDate(2024, 4, 10)
	if _, err := repo.InsertRule(ctx, monthlyRule(now)); err != nil {
		t.Fatalf("insert rule: %v", err)
	}

	posted, err := NewRecurringPoster(repo).PostDue(ctx, now)
	if err != nil {
		t.Fatalf("post due: %v", err)
	}
	if posted != 1 {
		t.Errorf("posted = %d, want exactly 1 for next_date == now", posted)
	}
}

func TestPostDueSkipsFutureRules(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	future := monthlyRule(core.NewDate(2024, 12, 1))
	saved, err := repo.InsertRule(ctx, future)
	if err != nil {
		t.Fatalf("insert rule: %v", err)
	}

	posted, err := NewRecurringPoster(repo).PostDue(ctx, core.NewDate(2024, 4, 10))
	if err != nil {
		t.Fatalf("post due: %v", err)
	}
	if posted != 0 {
		t.Errorf("posted = %d, want 0", posted)
	}

	got, err := repo.GetRule(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get rule: %v", err)
	}
	if !got.NextDate.Equal(future.NextDate) {
		t.Errorf("untouched rule's next_date moved to %s", got.NextDate.Format())
	}
}

func TestPostDueUnsupportedInterval(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.InsertRule(ctx, core.RecurringRule{
		Type: core.Expense, Category: "Other", Amount: core.MoneyFromCents(500),
		Interval: "quarterly", NextDate: core.NewDate(2024, 1, 1),
	}); err != nil {
		t.Fatalf("insert rule: %v", err)
	}

	poster := NewRecurringPoster(repo)
	now := core.NewDate(2024, 4, 10)

	// One occurrence per pass until the interval is fixed.
	for pass := 1; pass <= 2; pass++ {
		posted, err := poster.PostDue(ctx, now)
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		if posted != 1 {
			t.Errorf("pass %d posted %d, want 1", pass, posted)
		}
	}
}
