// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ngl-guild/internal/cache"
	"github.com/olegiv/ngl-guild/internal/session"
	"github.com/olegiv/ngl-guild/internal/version"
)

// Health statuses.
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	sm        *scs.SessionManager
	cache     cache.Cacher
	build     version.Info
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. c may be nil.
func NewHealthHandler(db *sql.DB, sm *scs.SessionManager, c cache.Cacher, build version.Info) *HealthHandler {
	return &HealthHandler{db: db, sm: sm, cache: c, build: build, startTime: time.Now()}
}

// HealthStatus is the health response. Checks and System are only filled
// for logged-in admins.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp,omitzero"`
	Uptime    string           `json:"uptime,omitempty"`
	Build     *version.Info    `json:"build,omitempty"`
	Checks    map[string]Check `json:"checks,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check is a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains runtime metrics.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())

	status := HealthStatus{Status: dbCheck.Status}

	if h.isAdmin(r) {
		status.Timestamp = time.Now().UTC()
		status.Uptime = time.Since(h.startTime).Round(time.Second).String()
		status.Build = &h.build
		status.Checks = map[string]Check{"database": dbCheck}
		if h.cache != nil {
			st := h.cache.Stats()
			status.Checks["cache"] = Check{
				Status:  statusHealthy,
				Message: fmt.Sprintf("%d items, %.1f%% hit rate", st.Items, st.HitRate),
			}
		}
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		status.System = &SystemInfo{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / (1 << 20),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if status.Status != statusHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(status)
}

// isAdmin reports whether the request carries an admin session. It returns
// false when session data was not loaded into the context.
func (h *HealthHandler) isAdmin(r *http.Request) (ok bool) {
	if h.sm == nil {
		return false
	}
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
		}
	}()
	return session.AdminID(r.Context(), h.sm) > 0
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: "Connected", Latency: latency.String()}
}
