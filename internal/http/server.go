// Package http serves the ledger's JSON API: transaction CRUD and
// filtering, categories, budgets, recurring rules, reports, CSV
// import/export and backup/restore.
package http

import (
	"net/http"

	applog "tally/internal/log"
	"tally/internal/services"
	"tally/internal/storage"
)

type Server struct {
	*http.Server

	ledger   *services.Ledger
	poster   *services.RecurringPoster
	reporter *services.Reporter
	repo     *storage.Repository
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server. Timeouts are the caller's responsibility.
func NewServer(addr string, repo *storage.Repository, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ledger:   services.NewLedger(repo),
		poster:   services.NewRecurringPoster(repo),
		reporter: services.NewReporter(repo),
		repo:     repo,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("POST /categories", s.handleCreateCategory)
	mux.HandleFunc("DELETE /categories/{name}", s.handleDeleteCategory)

	mux.HandleFunc("GET /budgets", s.handleListBudgets)
	mux.HandleFunc("PUT /budgets", s.handleSetBudget)

	mux.HandleFunc("GET /recurring", s.handleListRules)
	mux.HandleFunc("POST /recurring", s.handleCreateRule)
	mux.HandleFunc("PUT /recurring/{id}", s.handleUpdateRule)
	mux.HandleFunc("DELETE /recurring/{id}", s.handleDeleteRule)
	mux.HandleFunc("POST /recurring/post", s.handlePostDue)

	mux.HandleFunc("GET /reports/summary", s.handleSummary)
	mux.HandleFunc("GET /reports/trend", s.handleTrend)
	mux.HandleFunc("GET /reports/categories", s.handleCategoryBreakdown)
	mux.HandleFunc("GET /reports/budget", s.handleBudgetVsActual)

	mux.HandleFunc("POST /import", s.handleImport)
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /backup", s.handleBackup)
	mux.HandleFunc("POST /restore", s.handleRestore)

	var handler http.Handler = mux
	handler = withSecurityHeaders(handler)
	if logger != nil {
		handler = applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(handler)
	}

	s.Server = &http.Server{Addr: addr, Handler: handler}
	return s
}

// withSecurityHeaders sets the response headers appropriate for a
// local-only JSON API.
func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
