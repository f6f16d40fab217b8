// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ngl-guild/internal/cache"
	"github.com/olegiv/ngl-guild/internal/version"
)

func TestHealthHandler_Anonymous(t *testing.T) {
	env := newTestEnv(t)
	h := NewHealthHandler(env.db, env.sm, nil, version.Info{})

	rec := httptest.NewRecorder()
	h.Health(rec, env.get(t, "/health"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, map[string]any{"status": "healthy"}, raw)
}

func TestHealthHandler_WithoutSessionData(t *testing.T) {
	env := newTestEnv(t)
	h := NewHealthHandler(env.db, env.sm, nil, version.Info{})

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestHealthHandler_Admin(t *testing.T) {
	env := newTestEnv(t)
	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{})
	t.Cleanup(func() { _ = mc.Close() })
	h := NewHealthHandler(env.db, env.sm, mc, version.Info{Version: "v1.0.0"})

	rec := httptest.NewRecorder()
	h.Health(rec, env.asAdmin(env.get(t, "/health")))

	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, statusHealthy, status.Status)
	assert.NotEmpty(t, status.Uptime)
	require.NotNil(t, status.Build)
	assert.Equal(t, "v1.0.0", status.Build.Version)
	require.Contains(t, status.Checks, "database")
	assert.Equal(t, statusHealthy, status.Checks["database"].Status)
	assert.Contains(t, status.Checks, "cache")
	require.NotNil(t, status.System)
	assert.NotEmpty(t, status.System.GoVersion)
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	env := newTestEnv(t)
	h := NewHealthHandler(env.db, env.sm, nil, version.Info{})
	require.NoError(t, env.db.Close())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unhealthy"}`, rec.Body.String())
}
