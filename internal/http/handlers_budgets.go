package http

import (
	"net/http"

	"tally/internal/core"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month != "" && !core.ValidMonthKey(month) {
		writeError(w, core.ErrInvalidMonth)
		return
	}
	budgets, err := s.ledger.ListBudgets(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, budgetResponse{Month: b.Month, Category: b.Category, Amount: b.Amount.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSetBudget creates or replaces the budget for a (month, category)
// pair.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	b := core.Budget{Month: req.Month, Category: req.Category, Amount: amount}
	if err := s.ledger.SetBudget(r.Context(), b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetResponse{Month: b.Month, Category: b.Category, Amount: b.Amount.String()})
}
