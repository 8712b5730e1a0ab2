package http

import (
	"net/http"

	"tally/internal/core"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	sum, err := s.reporter.Summary(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Expenses: sum.Expenses.String(),
		Income:   sum.Income.String(),
		Balance:  sum.Balance.String(),
		Count:    sum.Count,
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	totals, err := s.reporter.MonthlyTrend(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]trendEntry, 0, len(totals))
	for _, t := range totals {
		out = append(out, trendEntry{Month: t.Month, Type: string(t.Type), Amount: t.Amount.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	totals, err := s.reporter.CategoryBreakdown(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]categoryTotalEntry, 0, len(totals))
	for _, t := range totals {
		out = append(out, categoryTotalEntry{Category: t.Category, Amount: t.Amount.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleBudgetVsActual compares each budgeted category against actual
// spending for the requested month. Month defaults to the current one.
func (s *Server) handleBudgetVsActual(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = core.MonthKey(core.Today())
	}
	lines, err := s.reporter.BudgetVsActual(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]budgetLineEntry, 0, len(lines))
	for _, l := range lines {
		out = append(out, budgetLineEntry{
			Category:  l.Category,
			Budget:    l.Budget.String(),
			Actual:    l.Actual.String(),
			Remaining: l.Remaining.String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
