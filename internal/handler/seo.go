// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/ngl-guild/internal/seo"
	"github.com/olegiv/ngl-guild/internal/service"
)

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	posts       *service.PostService
	siteURL     string
	disallowAll bool
}

// NewSEOHandler creates an SEOHandler. An empty siteURL is derived from
// each request's host.
func NewSEOHandler(posts *service.PostService, siteURL string, disallowAll bool) *SEOHandler {
	return &SEOHandler{posts: posts, siteURL: strings.TrimSuffix(siteURL, "/"), disallowAll: disallowAll}
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(seo.Robots(h.baseURL(r), h.disallowAll)))
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished(r.Context(), "")
	if err != nil {
		logAndInternalError(w, "failed to list posts for sitemap", "error", err)
		return
	}
	data, err := seo.Sitemap(h.baseURL(r), posts)
	if err != nil {
		logAndInternalError(w, "failed to build sitemap", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
