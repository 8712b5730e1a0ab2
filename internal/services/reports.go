package services

import (
	"context"
	"fmt"

	"tally/internal/core"
	"tally/internal/storage"
)

// Reporter derives the dashboard views: KPI summary, monthly trend,
// category breakdown and budget-vs-actual.
type Reporter struct {
	repo *storage.Repository
}

func NewReporter(repo *storage.Repository) *Reporter {
	return &Reporter{repo: repo}
}

// Summary computes the KPIs for a filtered transaction set.
func (r *Reporter) Summary(ctx context.Context, f storage.TransactionFilter) (core.Summary, error) {
	expense, income, count, err := r.repo.TotalsByType(ctx, f)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summary{
		Expenses: expense,
		Income:   income,
		Balance:  income.Sub(expense),
		Count:    count,
	}, nil
}

// MonthlyTrend returns per-month, per-type sums ordered oldest first.
func (r *Reporter) MonthlyTrend(ctx context.Context, f storage.TransactionFilter) ([]core.MonthTypeTotal, error) {
	return r.repo.MonthlyTotals(ctx, f)
}

// CategoryBreakdown sums expenses by category within the filter, largest
// first. Income is excluded, matching the dashboard pie.
func (r *Reporter) CategoryBreakdown(ctx context.Context, f storage.TransactionFilter) ([]core.CategoryTotal, error) {
	f.Type = core.Expense
	return r.repo.CategoryTotals(ctx, f)
}

// BudgetVsActual joins the month's budgets with its actual expense
// totals per category. Categories with a budget but no spending report a
// zero actual; spending in unbudgeted categories is not listed.
func (r *Reporter) BudgetVsActual(ctx context.Context, month string) ([]core.BudgetLine, error) {
	budgets, err := r.repo.ListBudgets(ctx, month)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, nil
	}

	first, last, err := core.MonthBounds(month)
	if err != nil {
		return nil, fmt.Errorf("month %q: %w", month, err)
	}
	actuals, err := r.repo.CategoryTotals(ctx, storage.TransactionFilter{
		From: first,
		To:   last,
		Type: core.Expense,
	})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]core.Money, len(actuals))
	for _, a := range actuals {
		byCategory[a.Category] = a.Amount
	}

	lines := make([]core.BudgetLine, len(budgets))
	for i, b := range budgets {
		actual := byCategory[b.Category]
		lines[i] = core.BudgetLine{
			Category:  b.Category,
			Budget:    b.Amount,
			Actual:    actual,
			Remaining: b.Amount.Sub(actual),
		}
	}
	return lines, nil
}
