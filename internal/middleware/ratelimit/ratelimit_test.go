package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, perMinute int) (*Limiter, *time.Time) {
	t.Helper()
	rl := NewLimiter(Config{RequestsPerMinute: perMinute})
	t.Cleanup(rl.Stop)
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestAllowWindow(t *testing.T) {
	rl, now := newTestLimiter(t, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("fourth request in the window should be rejected")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("other clients have their own budget")
	}

	*now = now.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Fatal("a new window should reset the budget")
	}
}

func TestSteadyTrafficCannotExtendWindow(t *testing.T) {
	rl, now := newTestLimiter(t, 2)

	rl.Allow("ip")
	*now = now.Add(40 * time.Second)
	rl.Allow("ip")
	*now = now.Add(10 * time.Second)
	if rl.Allow("ip") {
		t.Fatal("third request inside the first minute should be rejected")
	}
	*now = now.Add(15 * time.Second)
	if !rl.Allow("ip") {
		t.Fatal("window started at t=0 must expire at t=60s")
	}
}

func TestCleanupStaleEntries(t *testing.T) {
	rl, now := newTestLimiter(t, 10)
	rl.Allow("a")
	*now = now.Add(11 * time.Minute)
	rl.Allow("b")

	rl.cleanupStaleEntries()
	if got := rl.ActiveClients(); got != 1 {
		t.Fatalf("expected 1 active client, got %d", got)
	}
}

func TestMiddlewareOnlyLimitsMutations(t *testing.T) {
	rl, _ := newTestLimiter(t, 1)
	handler := rl.Middleware(func(*http.Request) string { return "ip" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }))

	do := func(method string) int {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, "/expenses", nil))
		return rr.Code
	}

	if code := do(http.MethodPost); code != http.StatusNoContent {
		t.Fatalf("first POST: %d", code)
	}
	if code := do(http.MethodPost); code != http.StatusTooManyRequests {
		t.Fatalf("second POST should be limited, got %d", code)
	}
	if code := do(http.MethodGet); code != http.StatusNoContent {
		t.Fatalf("GET should never be limited, got %d", code)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	rl := NewLimiter(Config{})
	rl.Stop()
	rl.Stop()
}
