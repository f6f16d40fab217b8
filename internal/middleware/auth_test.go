// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/session"
	"github.com/olegiv/ngl-guild/internal/testutil"
)

// withSession runs h inside a scs session where setup has already run.
func withSession(sm *scs.SessionManager, setup func(r *http.Request), h http.Handler) http.Handler {
	return sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if setup != nil {
			setup(r)
		}
		h.ServeHTTP(w, r)
	}))
}

func TestAuth_RedirectsAnonymous(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	sm := session.New(db, true)

	called := false
	h := withSession(sm, nil, Auth(sm)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAuthAndLoadAdmin(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	sm := session.New(db, true)
	acc := testutil.CreateAdmin(t, db, "lider", "segredo-forte-123")

	var got *model.Admin
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetAdmin(r)
	})
	h := withSession(sm, func(r *http.Request) {
		sm.Put(r.Context(), session.KeyAdminID, acc.ID)
	}, Auth(sm)(LoadAdmin(sm, db)(inner)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	require.NotNil(t, got)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, "lider", got.Username)
}

func TestLoadAdmin_DeletedAccount(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	sm := session.New(db, true)

	h := withSession(sm, func(r *http.Request) {
		sm.Put(r.Context(), session.KeyAdminID, int64(999))
	}, LoadAdmin(sm, db)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run for a deleted account")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestGetAdmin_Empty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetAdmin(r))
	assert.Equal(t, int64(0), GetAdminID(r))

	r = r.WithContext(WithAdmin(r.Context(), model.Admin{ID: 3}))
	assert.Equal(t, int64(3), GetAdminID(r))
}

func TestRequestPath(t *testing.T) {
	var path string
	h := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = GetRequestPath(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/blog/x", nil))
	assert.Equal(t, "/blog/x", path)
}
