// Package http serves the expense tracker UI, its JSON API and the report
// downloads.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"expensetracker/internal/log"
	"expensetracker/internal/middleware/ratelimit"
	"expensetracker/internal/middleware/security"
	"expensetracker/internal/middleware/trace"
	"expensetracker/internal/tracker"
	appweb "expensetracker/web"
)

// ReadinessCheck reports whether the storage behind the tracker is usable.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	http.Server
	tracker   *tracker.Tracker
	templates *template.Template
	limiter   *ratelimit.Limiter
	logger    *log.Logger
	ready     ReadinessCheck
	now       func() time.Time

	rateLimit    int
	shutdownOnce sync.Once
}

type Option func(*Server)

func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l.WithComponent(log.ComponentHTTP) }
}

// WithRateLimit caps mutating requests per client and minute.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) { s.rateLimit = perMinute }
}

func WithReadiness(check ReadinessCheck) Option {
	return func(s *Server) { s.ready = check }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, t *tracker.Tracker, opts ...Option) (*Server, error) {
	s := &Server{
		tracker:   t,
		logger:    log.Default(log.ComponentHTTP),
		now:       time.Now,
		rateLimit: ratelimit.DefaultConfig().RequestsPerMinute,
	}
	for _, opt := range opts {
		opt(s)
	}

	tmpl, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = tmpl

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", security.CacheStatic(time.Hour)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /expenses/new", s.handleNewExpense)
	mux.HandleFunc("GET /expenses/{id}/edit", s.handleEditExpense)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("POST /expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("POST /expenses/{id}/delete", s.handleDeleteExpense)
	mux.HandleFunc("DELETE /expenses/{id}", s.handleDeleteExpenseAPI)
	mux.HandleFunc("POST /form/cancel", s.handleCancelForm)

	mux.HandleFunc("GET /api/expenses", s.handleListExpensesAPI)
	mux.HandleFunc("GET /api/total", s.handleTotalAPI)
	mux.HandleFunc("GET /export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /export.pdf", s.handleExportPDF)

	s.limiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: s.rateLimit})
	ips := security.NewClientIPResolver()
	headers := security.DefaultPolicy()
	tracer := trace.NewMiddleware(s.logger, ips.ClientIP)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(ips.ClientIP)(handler)
	handler = headers.Wrap(handler)
	handler = tracer.Middleware(handler)
	handler = log.RequestIDMiddleware(trace.RequestID)(handler)
	handler = log.Middleware(s.logger)(handler)

	s.Addr = addr
	s.Handler = handler
	s.ReadHeaderTimeout = 10 * time.Second
	s.ReadTimeout = 30 * time.Second
	s.WriteTimeout = 30 * time.Second
	s.IdleTimeout = 120 * time.Second
	return s, nil
}

// Shutdown gracefully shuts down the server and its cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
