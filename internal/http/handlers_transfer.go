package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"tally/internal/csvio"
)

// handleImport reads a CSV body and inserts every row in one
// transaction. A single bad row rejects the whole file.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	txns, err := csvio.Import(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.ledger.ImportTransactions(r.Context(), txns); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"imported": len(txns)})
}

// handleExport streams the filtered transactions as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	txns, err := s.ledger.ListTransactions(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := csvio.Export(w, txns); err != nil {
		// Headers are already out; nothing left to do but log upstream.
		return
	}
}

// handleBackup streams a copy of the database file.
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	base := filepath.Base(s.repo.Path())
	base = base[:len(base)-len(filepath.Ext(base))]
	name := fmt.Sprintf("%s-%s.db", base, time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := s.repo.BackupTo(w); err != nil {
		return
	}
}

// handleRestore replaces the database with the uploaded file. Existing
// data is discarded.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Restore(r.Body); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}
