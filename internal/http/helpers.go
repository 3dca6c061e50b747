package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
)

const maxFormBytes = 64 << 10

var errBadID = errors.New("invalid expense id")

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errBadID
	}
	return id, nil
}

// parseDraft reads the entry form. Amount and date are passed through
// verbatim so the tracker can validate them.
func parseDraft(w http.ResponseWriter, r *http.Request) (core.Draft, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return core.Draft{}, err
	}
	return core.Draft{
		Name:   sanitizeInput(r.PostForm.Get("name")),
		Amount: strings.TrimSpace(r.PostForm.Get("amount")),
		Date:   strings.TrimSpace(r.PostForm.Get("date")),
	}, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode JSON response", log.FieldError, err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errNotFoundFor(id int64) error {
	return fmt.Errorf("expense %d: %w", id, core.ErrNotFound)
}
