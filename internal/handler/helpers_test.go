// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ngl-guild/internal/cache"
	"github.com/olegiv/ngl-guild/internal/middleware"
	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
	"github.com/olegiv/ngl-guild/internal/session"
	"github.com/olegiv/ngl-guild/internal/testutil"
	"github.com/olegiv/ngl-guild/web"
)

// testEnv wires the services and renderer over a temporary database.
type testEnv struct {
	db       *sql.DB
	sm       *scs.SessionManager
	renderer *render.Renderer
	audit    *service.AuditService
	auth     *service.AuthService
	players  *service.PlayerService
	posts    *service.PostService
	admin    model.Admin
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	sm := session.New(db, true)
	renderer, err := render.New(render.Config{TemplatesFS: web.Templates, SessionManager: sm})
	require.NoError(t, err)

	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: 100})
	t.Cleanup(func() { _ = mc.Close() })

	acc := testutil.CreateAdmin(t, db, "admin", "s3cret-passw0rd")

	audit := service.NewAuditService(db)
	return &testEnv{
		db:       db,
		sm:       sm,
		renderer: renderer,
		audit:    audit,
		auth:     service.NewAuthService(db),
		players:  service.NewPlayerService(db, audit),
		posts:    service.NewPostService(db, audit, mc, time.Minute),
		admin:    model.Admin{ID: acc.ID, Username: acc.Username, CreatedAt: acc.CreatedAt},
	}
}

// requestWithURLParams adds chi URL parameters to the request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// requestWithSession loads a fresh session into the request context.
func requestWithSession(t *testing.T, sm *scs.SessionManager, r *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(r.Context(), "")
	require.NoError(t, err)
	return r.WithContext(ctx)
}

// asAdmin marks the request as coming from the logged-in test admin.
func (e *testEnv) asAdmin(r *http.Request) *http.Request {
	e.sm.Put(r.Context(), session.KeyAdminID, e.admin.ID)
	return r.WithContext(middleware.WithAdmin(r.Context(), e.admin))
}

// get builds a GET request with a loaded session.
func (e *testEnv) get(t *testing.T, target string) *http.Request {
	t.Helper()
	return requestWithSession(t, e.sm, httptest.NewRequest(http.MethodGet, target, nil))
}

// postForm builds a urlencoded POST request with a loaded session.
func (e *testEnv) postForm(t *testing.T, target string, form url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return requestWithSession(t, e.sm, r)
}

// flash returns the flash message stored in the request's session.
func (e *testEnv) flash(r *http.Request) (message, kind string) {
	return e.sm.GetString(r.Context(), session.KeyFlash), e.sm.GetString(r.Context(), session.KeyFlashType)
}

// createPost stores a post through the service.
func (e *testEnv) createPost(t *testing.T, in service.PostInput) *model.Post {
	t.Helper()
	p, err := e.posts.Create(context.Background(), e.admin.ID, in)
	require.NoError(t, err)
	return p
}

// registerPlayer stores a player through the service.
func (e *testEnv) registerPlayer(t *testing.T, p model.Player) *model.Player {
	t.Helper()
	out, err := e.players.Register(context.Background(), p)
	require.NoError(t, err)
	return out
}
