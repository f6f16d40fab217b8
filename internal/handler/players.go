// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
	"github.com/olegiv/ngl-guild/internal/session"
)

// PlayerHandler serves player registration, listing and self-edit.
type PlayerHandler struct {
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	players        *service.PlayerService
}

// NewPlayerHandler creates a PlayerHandler.
func NewPlayerHandler(renderer *render.Renderer, sm *scs.SessionManager, players *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{renderer: renderer, sessionManager: sm, players: players}
}

// formOptions is the vocabulary the player form is built from.
func formOptions() map[string]any {
	return map[string]any{
		"Weapons":            model.Weapons,
		"BuildTypes":         model.BuildTypes,
		"Platforms":          model.Platforms,
		"GuildRoles":         model.GuildRoles,
		"TimeSlots":          model.TimeSlots,
		"Professions":        model.Professions,
		"Weekdays":           model.Weekdays,
		"ContentInterests":   model.ContentInterests,
		"GamerPersonalities": model.GamerPersonalities,
	}
}

func playerFormData(p *model.Player, action string) map[string]any {
	data := formOptions()
	data["Player"] = p
	data["Action"] = action
	return data
}

// List handles GET /players?q=&weapon=&build=.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.PlayerFilter{
		Search:    strings.TrimSpace(q.Get("q")),
		Weapon:    q.Get("weapon"),
		BuildType: q.Get("build"),
	}

	players, err := h.players.List(r.Context(), filter)
	if err != nil {
		logAndInternalError(w, "failed to list players", "error", err)
		return
	}

	data := formOptions()
	data["Players"] = players
	data["Filter"] = filter
	renderPage(w, r, h.renderer, "public/players", render.TemplateData{
		Title: "Jogadores",
		Data:  data,
	})
}

// RegisterForm handles GET /register.
func (h *PlayerHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, "public/register", render.TemplateData{
		Title: "Registro de Jogadores",
		Data:  playerFormData(&model.Player{Level: 1}, "/register"),
	})
}

// Register handles POST /register.
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		flashError(w, r, h.renderer, "/register", "Dados do formulário inválidos")
		return
	}

	in := playerFromForm(r.PostForm)
	p, err := h.players.Register(r.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			renderStatus(w, r, h.renderer, http.StatusUnprocessableEntity, "public/register", render.TemplateData{
				Title:  "Registro de Jogadores",
				Data:   playerFormData(&in, "/register"),
				Errors: validationErrors(err),
			})
			return
		}
		logAndInternalError(w, "failed to register player", "error", err)
		return
	}

	slog.Info("player registered", "player_id", p.ID, "nickname", p.Nickname)
	h.sessionManager.Put(r.Context(), session.KeyPlayerID, p.ID)
	http.Redirect(w, r, "/register/done", http.StatusSeeOther)
}

// Registered handles GET /register/done and shows the edit id.
func (h *PlayerHandler) Registered(w http.ResponseWriter, r *http.Request) {
	id := h.sessionManager.GetString(r.Context(), session.KeyPlayerID)
	if id == "" {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	renderPage(w, r, h.renderer, "public/registered", render.TemplateData{
		Title: "Registro concluído",
		Data:  id,
	})
}

// EditLookup handles GET /players/edit. With ?id= it redirects to the
// player's edit page, otherwise it shows the id form.
func (h *PlayerHandler) EditLookup(w http.ResponseWriter, r *http.Request) {
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		http.Redirect(w, r, "/players/"+url.PathEscape(id)+"/edit", http.StatusSeeOther)
		return
	}
	renderPage(w, r, h.renderer, "public/player_lookup", render.TemplateData{
		Title: "Editar Perfil",
		Data:  h.sessionManager.GetString(r.Context(), session.KeyPlayerID),
	})
}

// EditForm handles GET /players/{id}/edit.
func (h *PlayerHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.players.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, h.renderer, "/players/edit", "Jogador não encontrado")
			return
		}
		logAndInternalError(w, "failed to load player", "player_id", id, "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), session.KeyPlayerID, p.ID)
	renderPage(w, r, h.renderer, "public/player_edit", render.TemplateData{
		Title: "Editar Perfil",
		Data:  playerFormData(p, "/players/"+p.ID+"/edit"),
	})
}

// Edit handles POST /players/{id}/edit.
func (h *PlayerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	editURL := "/players/" + url.PathEscape(id) + "/edit"

	if err := parseForm(w, r); err != nil {
		flashError(w, r, h.renderer, editURL, "Dados do formulário inválidos")
		return
	}

	in := playerFromForm(r.PostForm)
	p, err := h.players.Update(r.Context(), id, in)
	switch {
	case err == nil:
		flashSuccess(w, r, h.renderer, "/players/"+p.ID+"/edit", "Perfil atualizado com sucesso!")
	case errors.Is(err, service.ErrValidation):
		in.ID = id
		renderStatus(w, r, h.renderer, http.StatusUnprocessableEntity, "public/player_edit", render.TemplateData{
			Title:  "Editar Perfil",
			Data:   playerFormData(&in, editURL),
			Errors: validationErrors(err),
		})
	case errors.Is(err, service.ErrNotFound):
		flashError(w, r, h.renderer, "/players/edit", "Jogador não encontrado")
	default:
		logAndInternalError(w, "failed to update player", "player_id", id, "error", err)
	}
}
