// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"net/http"
	"strings"
)

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	IsDevelopment bool
	// FrameSources are extra origins allowed in frame-src (YouTube, map embed).
	FrameSources []string
	HSTSMaxAge   int
}

// DefaultSecurityHeadersConfig returns the headers used by the portal.
// YouTube embeds are always allowed.
func DefaultSecurityHeadersConfig(isDev bool, extraFrameSources ...string) SecurityHeadersConfig {
	sources := []string{"https://www.youtube.com", "https://www.youtube-nocookie.com"}
	for _, s := range extraFrameSources {
		if s != "" {
			sources = append(sources, s)
		}
	}
	return SecurityHeadersConfig{
		IsDevelopment: isDev,
		FrameSources:  sources,
		HSTSMaxAge:    31536000,
	}
}

// ContentSecurityPolicy builds the CSP header value.
func (c SecurityHeadersConfig) ContentSecurityPolicy() string {
	directives := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"font-src 'self' data:",
		"connect-src 'self'",
		"frame-src 'self' " + strings.Join(c.FrameSources, " "),
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}
	return strings.Join(directives, "; ")
}

// SecurityHeaders sets CSP, framing, referrer and HSTS headers.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	csp := cfg.ContentSecurityPolicy()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", csp)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "SAMEORIGIN")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
				h.Set("Strict-Transport-Security", fmt.Sprintf("max-age=%d; includeSubDomains", cfg.HSTSMaxAge))
			}
			next.ServeHTTP(w, r)
		})
	}
}
