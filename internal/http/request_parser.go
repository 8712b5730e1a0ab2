package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tally/internal/core"
	"tally/internal/storage"
)

// parseFilter reads the shared query parameters for transaction
// listings and reports: from, to, type, category, min_amount,
// max_amount and q.
func parseFilter(r *http.Request) (storage.TransactionFilter, error) {
	var f storage.TransactionFilter
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("from: %w", err)
		}
		f.From = d
	}
	if v := q.Get("to"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("to: %w", err)
		}
		f.To = d
	}
	if v := q.Get("type"); v != "" {
		t, err := core.ParseTxType(v)
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	f.Category = strings.TrimSpace(q.Get("category"))
	f.Search = strings.TrimSpace(q.Get("q"))

	if v := q.Get("min_amount"); v != "" {
		m, err := core.ParseMoney(v)
		if err != nil {
			return f, fmt.Errorf("min_amount: %w", err)
		}
		f.MinAmount = &m
	}
	if v := q.Get("max_amount"); v != "" {
		m, err := core.ParseMoney(v)
		if err != nil {
			return f, fmt.Errorf("max_amount: %w", err)
		}
		f.MaxAmount = &m
	}
	return f, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}
