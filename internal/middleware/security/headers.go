// Package security provides response-hardening middleware for the JSON
// API: standard security headers plus the permissive CORS policy the
// browser frontend needs.
package security

import (
	"net/http"
	"strings"
)

// HeadersConfig holds security headers configuration.
type HeadersConfig struct {
	XFrameOptions       string
	XContentTypeOptions string
	ReferrerPolicy      string
	PermissionsPolicy   string

	// CORS settings. The frontend is served from anywhere (shared trip
	// links), so the default allows all origins.
	CORSAllowOrigin  string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

// DefaultHeadersConfig returns defaults for a public JSON API.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		XFrameOptions:       "DENY",
		XContentTypeOptions: "nosniff",
		ReferrerPolicy:      "strict-origin-when-cross-origin",
		PermissionsPolicy:   "geolocation=(), microphone=(), camera=(), payment=()",

		CORSAllowOrigin:  "*",
		CORSAllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		CORSAllowHeaders: []string{"Content-Type"},
	}
}

// HeadersMiddleware applies security and CORS headers to responses.
type HeadersMiddleware struct {
	config HeadersConfig
}

// NewHeadersMiddleware creates a new security headers middleware.
func NewHeadersMiddleware(config HeadersConfig) *HeadersMiddleware {
	return &HeadersMiddleware{config: config}
}

// Middleware returns the HTTP middleware function. CORS preflight
// requests are answered here and never reach the handlers.
func (h *HeadersMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.applyHeaders(w)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *HeadersMiddleware) applyHeaders(w http.ResponseWriter) {
	headers := w.Header()

	headers.Set("X-Content-Type-Options", h.config.XContentTypeOptions)
	headers.Set("X-Frame-Options", h.config.XFrameOptions)
	headers.Set("Referrer-Policy", h.config.ReferrerPolicy)
	headers.Set("Permissions-Policy", h.config.PermissionsPolicy)

	if h.config.CORSAllowOrigin != "" {
		headers.Set("Access-Control-Allow-Origin", h.config.CORSAllowOrigin)
		headers.Set("Access-Control-Allow-Methods", strings.Join(h.config.CORSAllowMethods, ", "))
		headers.Set("Access-Control-Allow-Headers", strings.Join(h.config.CORSAllowHeaders, ", "))
	}
}
