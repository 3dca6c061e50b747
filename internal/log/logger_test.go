package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, Level: slog.LevelDebug, Component: ComponentTracker})

	l.Info("expense added", FieldExpenseID, 5)
	l.WithComponent(ComponentStorage).Debug("slot saved")

	out := buf.String()
	if !strings.Contains(out, "component=tracker") || !strings.Contains(out, "expense_id=5") {
		t.Fatalf("missing fields in %q", out)
	}
	if !strings.Contains(out, "component=storage") {
		t.Fatalf("expected storage component in %q", out)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf, Component: ComponentHTTP})

	var seen string
	h := Middleware(base)(RequestIDMiddleware(func(*http.Request) string { return "req_1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestID(r.Context())
			FromContext(r.Context()).InfoContext(r.Context(), "inside")
		})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen != "req_1" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
	if rr.Header().Get("X-Request-ID") != "req_1" {
		t.Fatalf("expected X-Request-ID header")
	}
	if !strings.Contains(buf.String(), "request_id=req_1") {
		t.Fatalf("expected request id in log output: %q", buf.String())
	}
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Output: &buf}))
	r := httptest.NewRequest(http.MethodPost, "/expenses", nil)

	sl.LogHTTPEnd(context.Background(), r, 422, 3, "10.0.0.1")
	sl.LogError(context.Background(), "save failed", errors.New("boom"), ComponentStorage, OpSave, nil)

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "status_code=422") {
		t.Fatalf("expected warn record for 4xx: %q", out)
	}
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "error=boom") {
		t.Fatalf("expected error record: %q", out)
	}
}

func TestFromContextFallback(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != "unknown" {
		t.Fatalf("expected fallback logger")
	}
}
