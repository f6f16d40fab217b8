// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ngl-guild/internal/geoip"
	"github.com/olegiv/ngl-guild/internal/middleware"
	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
	"github.com/olegiv/ngl-guild/internal/session"
)

const (
	redirectLogin = "/login"
	redirectAdmin = "/admin"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	auth            *service.AuthService
	audit           *service.AuditService
	loginProtection *middleware.LoginProtection
	geo             *geoip.Lookup
}

// NewAuthHandler creates an AuthHandler. geo may be nil.
func NewAuthHandler(renderer *render.Renderer, sm *scs.SessionManager, auth *service.AuthService, audit *service.AuditService, lp *middleware.LoginProtection, geo *geoip.Lookup) *AuthHandler {
	return &AuthHandler{
		renderer:        renderer,
		sessionManager:  sm,
		auth:            auth,
		audit:           audit,
		loginProtection: lp,
		geo:             geo,
	}
}

// LoginForm handles GET /login. Logged-in admins go to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if session.AdminID(r.Context(), h.sessionManager) > 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}
	renderPage(w, r, h.renderer, "auth/login", render.TemplateData{Title: "Acesso Admin"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		flashError(w, r, h.renderer, redirectLogin, "Dados do formulário inválidos")
		return
	}

	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Usuário e senha são obrigatórios")
		return
	}

	if locked, remaining := h.loginProtection.IsAccountLocked(username); locked {
		slog.Warn("login attempt on locked account", "username", username, "category", model.AuditCategoryAuth)
		flashError(w, r, h.renderer, redirectLogin, lockedMessage(remaining))
		return
	}

	admin, err := h.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			logAndInternalError(w, "failed to authenticate", "error", err)
			return
		}
		locked, lockDuration := h.loginProtection.RecordFailedAttempt(username)
		ip := clientIP(r)
		slog.Warn("failed login attempt",
			"username", username,
			"ip", ip,
			"country", h.country(ip),
			"category", model.AuditCategoryAuth)
		if locked {
			flashError(w, r, h.renderer, redirectLogin, lockedMessage(lockDuration))
			return
		}
		msg := "Credenciais inválidas"
		if n := h.loginProtection.RemainingAttempts(username); n > 0 && n <= 2 {
			msg = fmt.Sprintf("Credenciais inválidas. %d tentativa(s) restante(s).", n)
		}
		flashError(w, r, h.renderer, redirectLogin, msg)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(username)
	if err := session.LogIn(r.Context(), h.sessionManager, admin.ID); err != nil {
		logAndInternalError(w, "failed to renew session", "error", err)
		return
	}

	if err := h.audit.Log(r.Context(), service.AuditRecord{
		AdminID:    admin.ID,
		Category:   model.AuditCategoryAuth,
		Action:     model.ActionLogin,
		TargetType: model.TargetAdmin,
		TargetID:   fmt.Sprint(admin.ID),
		Details:    clientDetails(r, h.geo),
	}); err != nil {
		slog.Error("failed to audit login", "error", err)
	}

	flashSuccess(w, r, h.renderer, redirectAdmin, "Bem-vindo, "+admin.Username+"!")
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := session.AdminID(r.Context(), h.sessionManager); id > 0 {
		if err := h.audit.Log(r.Context(), service.AuditRecord{
			AdminID:    id,
			Category:   model.AuditCategoryAuth,
			Action:     model.ActionLogout,
			TargetType: model.TargetAdmin,
			TargetID:   fmt.Sprint(id),
		}); err != nil {
			slog.Error("failed to audit logout", "error", err)
		}
	}

	if err := session.LogOut(r.Context(), h.sessionManager); err != nil {
		logAndInternalError(w, "failed to end session", "error", err)
		return
	}
	flashSuccess(w, r, h.renderer, "/", "Sessão encerrada")
}

func (h *AuthHandler) country(ip string) string {
	if h.geo == nil {
		return ""
	}
	return h.geo.Country(ip)
}

func lockedMessage(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("Conta bloqueada temporariamente. Tente novamente em %d minuto(s).", minutes)
}
