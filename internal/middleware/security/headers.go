// Package security holds response hardening and client address resolution
// for the expense UI.
package security

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// contentPolicy allows nothing but same-origin styles, images and form posts.
// The UI never ships script.
var contentPolicy = strings.Join([]string{
	"default-src 'self'",
	"script-src 'none'",
	"style-src 'self'",
	"img-src 'self' data:",
	"object-src 'none'",
	"frame-ancestors 'none'",
	"base-uri 'self'",
	"form-action 'self'",
}, "; ")

// Policy is the set of headers stamped on every response.
type Policy struct {
	Fixed http.Header
	// HSTS is only sent on TLS connections. Zero disables it.
	HSTS time.Duration
}

func DefaultPolicy() Policy {
	fixed := http.Header{}
	fixed.Set("Content-Security-Policy", contentPolicy)
	fixed.Set("X-Content-Type-Options", "nosniff")
	fixed.Set("X-Frame-Options", "DENY")
	fixed.Set("Referrer-Policy", "same-origin")
	fixed.Set("Cross-Origin-Opener-Policy", "same-origin")
	fixed.Set("Cross-Origin-Resource-Policy", "same-origin")
	return Policy{Fixed: fixed, HSTS: 365 * 24 * time.Hour}
}

func (p Policy) hstsValue() string {
	return "max-age=" + strconv.Itoa(int(p.HSTS/time.Second)) + "; includeSubDomains"
}

// Wrap returns next with the policy applied.
func (p Policy) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for name, values := range p.Fixed {
			h[name] = append([]string(nil), values...)
		}
		if r.TLS != nil && p.HSTS > 0 {
			h.Set("Strict-Transport-Security", p.hstsValue())
		}
		next.ServeHTTP(w, r)
	})
}

// CacheStatic lets browsers keep embedded assets for maxAge.
func CacheStatic(maxAge time.Duration) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
