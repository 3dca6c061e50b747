package trace

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"expensetracker/internal/log"
)

func TestRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id := RequestID(req)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("generated id %q is not a UUID", id)
	}

	incoming := uuid.NewString()
	req.Header.Set("X-Request-ID", incoming)
	if got := RequestID(req); got != incoming {
		t.Fatalf("expected incoming id to be reused, got %q", got)
	}

	req.Header.Set("X-Request-ID", "<script>")
	if got := RequestID(req); got == "<script>" {
		t.Fatal("malformed incoming id must be replaced")
	}
}

func TestMiddlewareLogsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Output: &buf})

	m := NewMiddleware(logger, func(*http.Request) string { return "192.0.2.1" })
	handler := log.RequestIDMiddleware(RequestID)(m.Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			w.WriteHeader(http.StatusOK)
		})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/expenses", nil))

	out := buf.String()
	for _, want := range []string{"status_code=418", "client_ip=192.0.2.1", "path=/expenses", "request_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
	if m.TotalRequests() != 1 {
		t.Errorf("TotalRequests() = %d", m.TotalRequests())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}
