// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
	"github.com/olegiv/ngl-guild/internal/util"
)

// Welcome is the markdown shown on the home page.
const Welcome = `## Bem-vindo à NGL

Aqui você pode **registrar seu personagem**, compartilhar seu progresso,
encontrar companheiros de jornada e participar de eventos épicos.
Una-se a nós nesta aventura pelo mundo místico de *Where Winds Meet*.`

// PublicHandler serves the public pages.
type PublicHandler struct {
	renderer *render.Renderer
	posts    *service.PostService
	welcome  template.HTML
	mapURL   string
}

// NewPublicHandler creates a PublicHandler. welcome is markdown.
func NewPublicHandler(renderer *render.Renderer, posts *service.PostService, welcome, mapURL string) *PublicHandler {
	return &PublicHandler{
		renderer: renderer,
		posts:    posts,
		welcome:  render.Markdown(welcome),
		mapURL:   mapURL,
	}
}

// Home handles GET /.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	latest, err := h.posts.ListPublished(r.Context(), "")
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}
	if len(latest) > 3 {
		latest = latest[:3]
	}
	renderPage(w, r, h.renderer, "public/home", render.TemplateData{
		Title: "Início",
		Data: map[string]any{
			"Welcome": h.welcome,
			"Latest":  latest,
		},
	})
}

// Blog handles GET /blog?category=.
func (h *PublicHandler) Blog(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && category != service.AllCategories && !model.ValidCategory(category) {
		category = ""
	}

	posts, err := h.posts.ListPublished(r.Context(), category)
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err, "category", category)
		return
	}
	if category == "" {
		category = service.AllCategories
	}
	renderPage(w, r, h.renderer, "public/blog", render.TemplateData{
		Title: "Blog",
		Data: map[string]any{
			"Posts":      posts,
			"Category":   category,
			"Categories": append([]string{service.AllCategories}, model.Categories...),
		},
	})
}

// Post handles GET /blog/{id}. Only published posts are visible.
func (h *PublicHandler) Post(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.posts.GetPublished(r.Context(), id)
	if err != nil {
		serviceError(w, r, h.renderer, err, "failed to load post", "post_id", id)
		return
	}

	body, err := h.posts.RenderBody(r.Context(), post)
	if err != nil {
		logAndInternalError(w, "failed to render post", "post_id", id, "error", err)
		return
	}

	renderPage(w, r, h.renderer, "public/post", render.TemplateData{
		Title: post.Title,
		Data: map[string]any{
			"Post":    post,
			"Body":    body,
			"YouTube": util.YouTubeEmbedURL(post.YoutubeURL),
		},
	})
}

// Map handles GET /map.
func (h *PublicHandler) Map(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, "public/map", render.TemplateData{
		Title: "Mapa Interativo",
		Data: map[string]any{
			"EmbedURL": h.mapURL,
			"Origin":   util.Origin(h.mapURL),
		},
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	notFoundPage(w, r, h.renderer)
}
