// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for admin authentication,
// CSRF protection, rate limiting and security headers.
package middleware

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/session"
	"github.com/olegiv/ngl-guild/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys.
const (
	ContextKeyAdmin       ContextKey = "admin"
	ContextKeyRequestPath ContextKey = "request_path"
)

// Auth creates middleware that requires a logged-in admin.
// Anonymous requests are redirected to the login page.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session.AdminID(r.Context(), sm) == 0 {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoadAdmin creates middleware that loads the logged-in admin into the
// request context. Anonymous requests pass through; a session pointing at a
// deleted account is destroyed.
func LoadAdmin(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := session.AdminID(r.Context(), sm)
			if id == 0 {
				next.ServeHTTP(w, r)
				return
			}

			acc, err := queries.GetAdminAccountByID(r.Context(), id)
			if err != nil {
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), model.Admin{
				ID:          acc.ID,
				Username:    acc.Username,
				CreatedAt:   acc.CreatedAt,
				LastLoginAt: acc.LastLoginAt,
			})))
		})
	}
}

// WithAdmin returns a copy of ctx carrying admin.
func WithAdmin(ctx context.Context, admin model.Admin) context.Context {
	return context.WithValue(ctx, ContextKeyAdmin, admin)
}

// GetAdmin returns the admin from the request context, or nil.
func GetAdmin(r *http.Request) *model.Admin {
	admin, ok := r.Context().Value(ContextKeyAdmin).(model.Admin)
	if !ok {
		return nil
	}
	return &admin
}

// GetAdminID returns the admin id from the request context, or 0.
func GetAdminID(r *http.Request) int64 {
	if admin := GetAdmin(r); admin != nil {
		return admin.ID
	}
	return 0
}

// RequestPath stores the request path in the context.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, _ := ctx.Value(ContextKeyRequestPath).(string)
	return path
}
