package http

import (
	"net/http"

	"expensetracker/internal/log"
	"expensetracker/internal/tracker"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "")
}

func (s *Server) handleNewExpense(w http.ResponseWriter, r *http.Request) {
	s.tracker.OpenNew()
	redirectHome(w, r)
}

// handleEditExpense opens the form for an existing expense. Unknown ids
// leave the form untouched.
func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.tracker.StartEdit(id) {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Edit requested for unknown expense",
			log.FieldExpenseID, id)
	}
	redirectHome(w, r)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	draft, err := parseDraft(w, r)
	if err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	if s.tracker.Form().Mode != tracker.FormAdd {
		s.tracker.OpenNew()
	}

	if _, err := s.tracker.Add(r.Context(), draft); err != nil {
		alert, status := alertFor(err)
		s.renderPage(w, r, status, alert)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	draft, err := parseDraft(w, r)
	if err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	// The form posts to the id it was opened for; a stale tab may target a
	// different one than the tracker is currently editing.
	if form := s.tracker.Form(); !form.Editing() || form.EditID != id {
		if !s.tracker.StartEdit(id) {
			alert, status := alertFor(errNotFoundFor(id))
			s.renderPage(w, r, status, alert)
			return
		}
	}

	if _, err := s.tracker.CommitEdit(r.Context(), draft); err != nil {
		alert, status := alertFor(err)
		s.renderPage(w, r, status, alert)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := s.tracker.Remove(r.Context(), id); err != nil {
		alert, status := alertFor(err)
		s.renderPage(w, r, status, alert)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleCancelForm(w http.ResponseWriter, r *http.Request) {
	s.tracker.Cancel()
	redirectHome(w, r)
}
