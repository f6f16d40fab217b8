// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ngl-guild/internal/export"
	"github.com/olegiv/ngl-guild/internal/middleware"
	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
)

// Dashboard tabs.
const (
	TabPlayers = "players"
	TabBlog    = "blog"
)

// auditPerPage is the page size of the audit log view.
const auditPerPage = 50

// AdminHandler serves the admin dashboard, player management, exports
// and the audit log.
type AdminHandler struct {
	renderer *render.Renderer
	players  *service.PlayerService
	posts    *service.PostService
	audit    *service.AuditService
	now      func() time.Time
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(renderer *render.Renderer, players *service.PlayerService, posts *service.PostService, audit *service.AuditService) *AdminHandler {
	return &AdminHandler{
		renderer: renderer,
		players:  players,
		posts:    posts,
		audit:    audit,
		now:      time.Now,
	}
}

// Dashboard handles GET /admin?tab=&q=.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tab := r.URL.Query().Get("tab")
	if tab != TabBlog {
		tab = TabPlayers
	}
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	playerCount, err := h.players.Count(ctx)
	if err != nil {
		logAndInternalError(w, "failed to count players", "error", err)
		return
	}
	postCount, err := h.posts.Count(ctx)
	if err != nil {
		logAndInternalError(w, "failed to count posts", "error", err)
		return
	}

	data := map[string]any{
		"Tab":         tab,
		"Search":      search,
		"PlayerCount": playerCount,
		"PostCount":   postCount,
	}

	switch tab {
	case TabBlog:
		posts, err := h.posts.ListAll(ctx)
		if err != nil {
			logAndInternalError(w, "failed to list posts", "error", err)
			return
		}
		data["Posts"] = posts
	default:
		players, err := h.players.List(ctx, service.PlayerFilter{AdminSearch: search})
		if err != nil {
			logAndInternalError(w, "failed to list players", "error", err)
			return
		}
		data["Players"] = players
	}

	renderPage(w, r, h.renderer, "admin/dashboard", render.TemplateData{
		Title: "Painel Admin",
		Data:  data,
	})
}

// PlayerDetail handles GET /admin/players/{id}.
func (h *AdminHandler) PlayerDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.players.Get(r.Context(), id)
	if err != nil {
		serviceError(w, r, h.renderer, err, "failed to load player", "player_id", id)
		return
	}
	renderPage(w, r, h.renderer, "admin/player", render.TemplateData{
		Title: p.Nickname,
		Data:  p,
	})
}

// DeletePlayer handles POST /admin/players/{id}/delete.
func (h *AdminHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.players.Delete(r.Context(), middleware.GetAdminID(r), id)
	switch {
	case err == nil:
		flashSuccess(w, r, h.renderer, redirectAdmin, "Jogador excluído")
	case isNotFound(err):
		flashError(w, r, h.renderer, redirectAdmin, "Jogador não encontrado")
	default:
		logAndInternalError(w, "failed to delete player", "player_id", id, "error", err)
	}
}

// ExportXLS handles GET /admin/players/export.xls.
func (h *AdminHandler) ExportXLS(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xls", export.ContentTypeXLS, func(buf *bytes.Buffer, players []model.Player) error {
		return export.WriteXLS(buf, players)
	})
}

// ExportPDF handles GET /admin/players/export.pdf.
func (h *AdminHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	h.export(w, r, "pdf", export.ContentTypePDF, func(buf *bytes.Buffer, players []model.Player) error {
		return export.WritePDF(buf, players, now)
	})
}

func (h *AdminHandler) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write func(*bytes.Buffer, []model.Player) error) {
	players, err := h.players.List(r.Context(), service.PlayerFilter{})
	if err != nil {
		logAndInternalError(w, "failed to list players for export", "error", err)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, players); err != nil {
		logAndInternalError(w, "failed to export players", "format", ext, "error", err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(h.now(), ext)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// Audit handles GET /admin/audit?page=.
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	result, err := h.audit.List(r.Context(), page, auditPerPage)
	if err != nil {
		logAndInternalError(w, "failed to list audit log", "error", err)
		return
	}
	renderPage(w, r, h.renderer, "admin/audit", render.TemplateData{
		Title: "Registro de Auditoria",
		Data:  result,
	})
}
