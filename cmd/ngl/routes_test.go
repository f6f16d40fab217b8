// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ngl-guild/internal/cache"
	"github.com/olegiv/ngl-guild/internal/config"
	"github.com/olegiv/ngl-guild/internal/middleware"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
	"github.com/olegiv/ngl-guild/internal/session"
	"github.com/olegiv/ngl-guild/internal/testutil"
	"github.com/olegiv/ngl-guild/internal/version"
	"github.com/olegiv/ngl-guild/web"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	cfg := &config.Config{
		SessionSecret: "k9#Xq2!vL7@pR4$wZ8^nB3&mC6*tY1%e",
		ServerHost:    "localhost",
		ServerPort:    8080,
		Env:           "development",
		MapEmbedURL:   "https://mapgenie.io/where-winds-meet/maps/world?embed=light",
	}

	sm := session.New(db, true)
	renderer, err := render.New(render.Config{TemplatesFS: web.Templates, SessionManager: sm, SiteName: "NGL"})
	require.NoError(t, err)

	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mc.Close() })

	audit := service.NewAuditService(db)
	r, err := newRouter(routerConfig{
		cfg:            cfg,
		db:             db,
		sessionManager: sm,
		cache:          mc,
		renderer:       renderer,
		services: services{
			audit:   audit,
			auth:    service.NewAuthService(db),
			players: service.NewPlayerService(db, audit),
			posts:   service.NewPostService(db, audit, mc, time.Minute),
		},
		loginProtection: middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
		build:           version.Info{Version: "test"},
	})
	require.NoError(t, err)
	return r
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRouter_PublicPages(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/", "/blog", "/players", "/register", "/map", "/login", "/players/edit"} {
		rec := serve(h, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
	}
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRouter_AdminRequiresLogin(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/admin", "/admin/audit", "/admin/players/export.xls", "/admin/posts/new"} {
		rec := serve(h, http.MethodGet, path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestRouter_RobotsAndSitemap(t *testing.T) {
	h := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User-agent: *\nDisallow: /\n", rec.Body.String())

	rec = serve(h, http.MethodGet, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<urlset")
}

func TestRouter_StaticAssets(t *testing.T) {
	h := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/static/css/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=604800", rec.Header().Get("Cache-Control"))
}

func TestRouter_NotFound(t *testing.T) {
	h := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/nao-existe")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
