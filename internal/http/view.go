package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/tracker"
)

const (
	alertInvalidInput = "Please enter valid expense details"
	alertNotFound     = "That expense no longer exists"
	alertFormClosed   = "The form was closed, please try again"
	alertSaveFailed   = "Could not save your changes, please try again"
)

type expenseRow struct {
	ID     int64
	Name   string
	Amount string
	Date   string
}

type formView struct {
	Open   bool
	Title  string
	Action string
	Submit string
	Name   string
	Amount string
	Date   string
}

type pageData struct {
	Expenses []expenseRow
	Total    string
	Form     formView
	Alert    string
}

func newPageData(expenses []core.Expense, form tracker.Form, alert string) pageData {
	data := pageData{
		Expenses: make([]expenseRow, 0, len(expenses)),
		Total:    core.FormatAmount(core.Total(expenses)),
		Alert:    alert,
	}
	for _, e := range expenses {
		data.Expenses = append(data.Expenses, expenseRow{
			ID:     e.ID,
			Name:   e.Name,
			Amount: core.FormatAmount(e.Amount),
			Date:   e.Date.Display(),
		})
	}

	data.Form = formView{
		Open:   form.Open(),
		Title:  "Add Expense",
		Action: "/expenses",
		Submit: "Add",
		Name:   form.Draft.Name,
		Amount: form.Draft.Amount,
		Date:   form.Draft.Date,
	}
	if form.Editing() {
		data.Form.Title = "Edit Expense"
		data.Form.Action = "/expenses/" + strconv.FormatInt(form.EditID, 10)
		data.Form.Submit = "Save"
	}
	return data
}

// alertFor maps a tracker error to the message shown above the list.
func alertFor(err error) (string, int) {
	switch {
	case err == nil:
		return "", http.StatusOK
	case errors.Is(err, core.ErrInvalidInput):
		return alertInvalidInput, http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNotFound):
		return alertNotFound, http.StatusNotFound
	case errors.Is(err, core.ErrNotEditing), errors.Is(err, core.ErrNotAdding):
		return alertFormClosed, http.StatusConflict
	default:
		return alertSaveFailed, http.StatusInternalServerError
	}
}

// renderPage executes the index template into a buffer first so a template
// error never leaves a half-written response.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, alert string) {
	data := newPageData(s.tracker.Expenses(), s.tracker.Form(), alert)

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Index template execution failed",
			log.FieldError, err, "template", "index.html")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
