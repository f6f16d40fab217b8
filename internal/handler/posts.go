// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ngl-guild/internal/content"
	"github.com/olegiv/ngl-guild/internal/middleware"
	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
)

const redirectBlogTab = "/admin?tab=blog"

// fontSizes are the text block sizes offered by the editor.
var fontSizes = []model.Option{
	{Value: "12px", Label: "Pequeno (12px)"},
	{Value: "14px", Label: "Pequeno-Médio (14px)"},
	{Value: "16px", Label: "Médio (16px)"},
	{Value: "18px", Label: "Grande (18px)"},
	{Value: "20px", Label: "Muito Grande (20px)"},
	{Value: "24px", Label: "Extra Grande (24px)"},
}

// PostHandler serves the admin post editor.
type PostHandler struct {
	renderer *render.Renderer
	posts    *service.PostService
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(renderer *render.Renderer, posts *service.PostService) *PostHandler {
	return &PostHandler{renderer: renderer, posts: posts}
}

// postForm is the template view of the post editor.
type postForm struct {
	ID         string
	Action     string
	Input      service.PostInput
	Blocks     []editorBlock
	Encoded    string
	Preview    template.HTML
	Kinds      []content.Kind
	FontSizes  []model.Option
	Categories []string
	EditorErr  string
}

func (h *PostHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, id string, in service.PostInput, active int, errs map[string]string, editorErr string) {
	encoded, err := content.Encode(in.Body)
	if err != nil {
		logAndInternalError(w, "failed to encode editor document", "error", err)
		return
	}
	preview, err := content.Render(in.Body, in.Content).HTML()
	if err != nil {
		logAndInternalError(w, "failed to render editor preview", "error", err)
		return
	}

	form := postForm{
		ID:         id,
		Action:     "/admin/posts",
		Input:      in,
		Blocks:     editorBlocks(in.Body, active),
		Encoded:    string(encoded),
		Preview:    preview,
		Kinds:      content.Kinds,
		FontSizes:  fontSizes,
		Categories: model.Categories,
		EditorErr:  editorErr,
	}
	title := "Novo Post"
	if id != "" {
		form.Action = "/admin/posts/" + id
		title = "Editar Post"
	}

	renderStatus(w, r, h.renderer, status, "admin/post_form", render.TemplateData{
		Title:  title,
		Data:   form,
		Errors: errs,
	})
}

// New handles GET /admin/posts/new.
func (h *PostHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", service.PostInput{Category: model.DefaultCategory}, -1, nil, "")
}

// Edit handles GET /admin/posts/{id}.
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			flashError(w, r, h.renderer, redirectBlogTab, "Post não encontrado")
			return
		}
		logAndInternalError(w, "failed to load post", "post_id", id, "error", err)
		return
	}
	h.renderForm(w, r, http.StatusOK, p.ID, service.PostInput{
		Title:      p.Title,
		Content:    p.Content,
		Category:   p.Category,
		Body:       p.Body,
		ImageURL:   p.ImageURL,
		YoutubeURL: p.YoutubeURL,
		Published:  p.Published,
	}, -1, nil, "")
}

// Create handles POST /admin/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "")
}

// Update handles POST /admin/posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, chi.URLParam(r, "id"))
}

// submit applies an editor action to the submitted form, or saves the
// post when the action is save. Editor actions re-render the form without
// persisting anything.
func (h *PostHandler) submit(w http.ResponseWriter, r *http.Request, id string) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "Dados do formulário inválidos", http.StatusBadRequest)
		return
	}

	doc, err := documentFromForm(r.PostForm)
	if err != nil {
		slog.Warn("invalid editor document submitted", "error", err)
		h.renderForm(w, r, http.StatusBadRequest, id, postInputFromForm(r.PostForm, nil), -1, nil,
			"O conteúdo do editor é inválido e foi descartado.")
		return
	}
	in := postInputFromForm(r.PostForm, doc)

	op, err := parseEditorAction(r.PostForm.Get(fieldAction))
	if err != nil {
		h.renderForm(w, r, http.StatusBadRequest, id, in, -1, nil, "Ação do editor inválida.")
		return
	}
	if op != nil {
		res, err := content.Apply(in.Body, *op)
		if err != nil {
			h.renderForm(w, r, http.StatusBadRequest, id, in, -1, nil, "Ação do editor inválida.")
			return
		}
		in.Body = res.Document
		h.renderForm(w, r, http.StatusOK, id, in, res.Active, nil, "")
		return
	}

	adminID := middleware.GetAdminID(r)
	if id == "" {
		_, err = h.posts.Create(r.Context(), adminID, in)
	} else {
		_, err = h.posts.Update(r.Context(), adminID, id, in)
	}
	switch {
	case err == nil:
		flashSuccess(w, r, h.renderer, redirectBlogTab, "Post salvo com sucesso!")
	case errors.Is(err, service.ErrValidation):
		h.renderForm(w, r, http.StatusUnprocessableEntity, id, in, -1, validationErrors(err), "")
	case isNotFound(err):
		flashError(w, r, h.renderer, redirectBlogTab, "Post não encontrado")
	default:
		logAndInternalError(w, "failed to save post", "post_id", id, "error", err)
	}
}

// TogglePublish handles POST /admin/posts/{id}/publish.
func (h *PostHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.posts.TogglePublish(r.Context(), middleware.GetAdminID(r), id)
	switch {
	case err == nil && p.Published:
		flashSuccess(w, r, h.renderer, redirectBlogTab, "Post publicado")
	case err == nil:
		flashSuccess(w, r, h.renderer, redirectBlogTab, "Post despublicado")
	case isNotFound(err):
		flashError(w, r, h.renderer, redirectBlogTab, "Post não encontrado")
	default:
		logAndInternalError(w, "failed to toggle publish", "post_id", id, "error", err)
	}
}

// Delete handles POST /admin/posts/{id}/delete.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.posts.Delete(r.Context(), middleware.GetAdminID(r), id)
	switch {
	case err == nil:
		flashSuccess(w, r, h.renderer, redirectBlogTab, "Post excluído")
	case isNotFound(err):
		flashError(w, r, h.renderer, redirectBlogTab, "Post não encontrado")
	default:
		logAndInternalError(w, "failed to delete post", "post_id", id, "error", err)
	}
}

// blocksRequest is the body of POST /admin/api/blocks.
type blocksRequest struct {
	Document content.Document `json:"document"`
	Op       content.Op       `json:"op"`
	Fallback string           `json:"fallback"`
}

// Blocks handles POST /admin/api/blocks: it applies one editor operation
// and returns the new document with its preview. Nothing is persisted.
func (h *PostHandler) Blocks(w http.ResponseWriter, r *http.Request) {
	var req blocksRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	res, err := content.Apply(req.Document, req.Op)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	preview, err := content.Render(res.Document, req.Fallback).HTML()
	if err != nil {
		slog.Error("failed to render block preview", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"document": res.Document,
		"active":   res.Active,
		"changed":  res.Changed,
		"html":     string(preview),
	})
}
