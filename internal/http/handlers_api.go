package http

import (
	"bytes"
	"net/http"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/report"
)

type expensesResponse struct {
	Expenses []core.Expense `json:"expenses"`
	Count    int            `json:"count"`
	Total    float64        `json:"total"`
}

type totalResponse struct {
	core.Summary
	Formatted string `json:"formatted"`
}

func (s *Server) handleListExpensesAPI(w http.ResponseWriter, r *http.Request) {
	expenses := s.tracker.Expenses()
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, r, http.StatusOK, expensesResponse{
		Expenses: expenses,
		Count:    len(expenses),
		Total:    core.Total(expenses),
	})
}

func (s *Server) handleTotalAPI(w http.ResponseWriter, r *http.Request) {
	sum := s.tracker.Summary()
	writeJSON(w, r, http.StatusOK, totalResponse{
		Summary:   sum,
		Formatted: core.FormatAmount(sum.Total),
	})
}

// handleDeleteExpenseAPI is the non-form variant of delete: 204 when the
// expense was removed, 404 when it did not exist.
func (s *Server) handleDeleteExpenseAPI(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	removed, err := s.tracker.Remove(r.Context(), id)
	if err != nil {
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "failed to save expenses"})
		return
	}
	if !removed {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: errNotFoundFor(id).Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, s.tracker.Expenses()); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "CSV export failed",
			log.FieldError, err, log.FieldOperation, log.OpExport)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := report.BuildPDF(s.tracker.Expenses(), s.now())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "PDF export failed",
			log.FieldError, err, log.FieldOperation, log.OpExport)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.pdf"`)
	_, _ = w.Write(pdf)
}
