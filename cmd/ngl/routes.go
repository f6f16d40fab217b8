// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/ngl-guild/internal/cache"
	"github.com/olegiv/ngl-guild/internal/config"
	"github.com/olegiv/ngl-guild/internal/geoip"
	"github.com/olegiv/ngl-guild/internal/handler"
	"github.com/olegiv/ngl-guild/internal/middleware"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
	"github.com/olegiv/ngl-guild/internal/util"
	"github.com/olegiv/ngl-guild/internal/version"
	"github.com/olegiv/ngl-guild/web"
)

type services struct {
	audit   *service.AuditService
	auth    *service.AuthService
	players *service.PlayerService
	posts   *service.PostService
}

type routerConfig struct {
	cfg             *config.Config
	db              *sql.DB
	sessionManager  *scs.SessionManager
	cache           cache.Cacher
	renderer        *render.Renderer
	services        services
	loginProtection *middleware.LoginProtection
	geo             *geoip.Lookup
	build           version.Info
}

// newRouter builds the HTTP router with the full middleware stack.
func newRouter(rc routerConfig) (http.Handler, error) {
	cfg := rc.cfg
	sm := rc.sessionManager
	svc := rc.services

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(chimw.StripSlashes)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment(), util.Origin(cfg.MapEmbedURL))
	r.Use(middleware.SecurityHeaders(securityConfig))
	r.Use(middleware.RequestPath)
	r.Use(sm.LoadAndSave)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr()))
	r.Use(csrfMiddleware)
	r.Use(middleware.LoadAdmin(sm, rc.db))

	registrationLimiter := middleware.NewFormRateLimiter(0.2, 5)

	publicHandler := handler.NewPublicHandler(rc.renderer, svc.posts, handler.Welcome, cfg.MapEmbedURL)
	playerHandler := handler.NewPlayerHandler(rc.renderer, sm, svc.players)
	authHandler := handler.NewAuthHandler(rc.renderer, sm, svc.auth, svc.audit, rc.loginProtection, rc.geo)
	adminHandler := handler.NewAdminHandler(rc.renderer, svc.players, svc.posts, svc.audit)
	postHandler := handler.NewPostHandler(rc.renderer, svc.posts)
	healthHandler := handler.NewHealthHandler(rc.db, sm, rc.cache, rc.build)
	seoHandler := handler.NewSEOHandler(svc.posts, cfg.SiteURL, cfg.IsDevelopment())

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", staticCache(604800)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))

	r.Get("/health", healthHandler.Health)
	r.Get("/robots.txt", seoHandler.Robots)
	r.Get("/sitemap.xml", seoHandler.Sitemap)

	// Public pages
	r.Get("/", publicHandler.Home)
	r.Get("/blog", publicHandler.Blog)
	r.Get("/blog/{id}", publicHandler.Post)
	r.Get("/map", publicHandler.Map)

	r.Get("/players", playerHandler.List)
	r.Get("/players/edit", playerHandler.EditLookup)
	r.Get("/players/{id}/edit", playerHandler.EditForm)
	r.With(registrationLimiter.Middleware()).Post("/players/{id}/edit", playerHandler.Edit)
	r.Get("/register", playerHandler.RegisterForm)
	r.With(registrationLimiter.Middleware()).Post("/register", playerHandler.Register)
	r.Get("/register/done", playerHandler.Registered)

	// Auth
	r.Get("/login", authHandler.LoginForm)
	r.With(rc.loginProtection.Middleware()).Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// Admin
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(sm))

		r.Get("/", adminHandler.Dashboard)
		r.Get("/audit", adminHandler.Audit)

		r.Get("/players/export.xls", adminHandler.ExportXLS)
		r.Get("/players/export.pdf", adminHandler.ExportPDF)
		r.Get("/players/{id}", adminHandler.PlayerDetail)
		r.Post("/players/{id}/delete", adminHandler.DeletePlayer)

		r.Get("/posts/new", postHandler.New)
		r.Post("/posts", postHandler.Create)
		r.Get("/posts/{id}", postHandler.Edit)
		r.Post("/posts/{id}", postHandler.Update)
		r.Post("/posts/{id}/publish", postHandler.TogglePublish)
		r.Post("/posts/{id}/delete", postHandler.Delete)

		r.Post("/api/blocks", postHandler.Blocks)
	})

	r.NotFound(publicHandler.NotFound)

	return r, nil
}

// staticCache sets a public Cache-Control max-age on static assets.
func staticCache(maxAge int) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, max-age=%d", maxAge)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
