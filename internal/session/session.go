// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager and the keys the
// application stores in it.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyAdminID   = "admin_id"
	KeyFlash     = "flash"
	KeyFlashType = "flash_type"
	// KeyPlayerID remembers the player registered from this browser so the
	// edit link can be offered again.
	KeyPlayerID = "player_id"
)

// New creates a session manager backed by the SQLite sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.IdleTimeout = 4 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// LogIn renews the session token and records the admin id. Renewing
// prevents session fixation.
func LogIn(ctx context.Context, sm *scs.SessionManager, adminID int64) error {
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	sm.Put(ctx, KeyAdminID, adminID)
	return nil
}

// LogOut removes the admin id and renews the token.
func LogOut(ctx context.Context, sm *scs.SessionManager) error {
	sm.Remove(ctx, KeyAdminID)
	return sm.RenewToken(ctx)
}

// AdminID returns the logged-in admin id, or 0.
func AdminID(ctx context.Context, sm *scs.SessionManager) int64 {
	return sm.GetInt64(ctx, KeyAdminID)
}
