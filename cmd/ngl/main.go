// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/ngl-guild/internal/cache"
	"github.com/olegiv/ngl-guild/internal/config"
	"github.com/olegiv/ngl-guild/internal/geoip"
	"github.com/olegiv/ngl-guild/internal/logging"
	"github.com/olegiv/ngl-guild/internal/middleware"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/scheduler"
	"github.com/olegiv/ngl-guild/internal/service"
	"github.com/olegiv/ngl-guild/internal/session"
	"github.com/olegiv/ngl-guild/internal/store"
	"github.com/olegiv/ngl-guild/internal/version"
	"github.com/olegiv/ngl-guild/internal/webhook"
	"github.com/olegiv/ngl-guild/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func buildInfo() version.Info {
	return version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "ngl - NGL guild portal\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_SESSION_SECRET        Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_DB_PATH               SQLite database path (default: ./data/ngl.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_SERVER_PORT           Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_ENV                   Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_ADMIN_PASSWORD        Password of the seeded admin account\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_REDIS_URL             Redis URL for the render cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_WEBHOOK_URL           Webhook (e.g. Discord) notified of registrations and new posts (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_GEOIP_DB_PATH         GeoLite2-Country database for login audit entries (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_SITE_URL              Public base URL for robots.txt and sitemap.xml (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NGL_AUDIT_RETENTION_DAYS  Days of audit log to keep, 0 keeps everything (default: 90)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Println(buildInfo().String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Warnings and errors also go to the audit log from here on.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAuditLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.Seed(ctx, db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("database ready")

	sessionManager := session.New(db, cfg.IsDevelopment())

	renderCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
		MaxSize:    cfg.CacheMaxSize,
	})
	defer func() {
		if err := renderCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.Templates,
		SessionManager: sessionManager,
		SiteName:       "NGL",
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	audit := service.NewAuditService(db)
	services := services{
		audit:   audit,
		auth:    service.NewAuthService(db),
		players: service.NewPlayerService(db, audit),
		posts:   service.NewPostService(db, audit, renderCache, cfg.CacheTTLDuration()),
	}

	if cfg.WebhookURL != "" {
		dispatcher := webhook.NewDispatcher(logger, webhook.DefaultConfig(cfg.WebhookURL, cfg.WebhookSecret))
		dispatcher.Start(ctx)
		defer dispatcher.Stop()
		services.players.SetEvents(dispatcher)
		services.posts.SetEvents(dispatcher)
	}

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("GeoIP database not available, country detection disabled", "error", err, "path", cfg.GeoIPDBPath)
	}
	defer func() { _ = geo.Close() }()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	go loginProtection.Run(ctx, 5*time.Minute)

	sched := scheduler.New(logger, 5*time.Minute)
	if err := sched.AddAuditPrune(audit, cfg.AuditRetention()); err != nil {
		return fmt.Errorf("scheduling audit prune: %w", err)
	}
	if geo.Enabled() {
		if err := sched.AddGeoIPReload(geo); err != nil {
			return fmt.Errorf("scheduling geoip reload: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	r, err := newRouter(routerConfig{
		cfg:             cfg,
		db:              db,
		sessionManager:  sessionManager,
		cache:           renderCache,
		renderer:        renderer,
		services:        services,
		loginProtection: loginProtection,
		geo:             geo,
		build:           buildInfo(),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
