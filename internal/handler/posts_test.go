// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ngl-guild/internal/content"
	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
)

func blocksRequestBody(t *testing.T, doc content.Document, op content.Op) *strings.Reader {
	t.Helper()
	data, err := json.Marshal(blocksRequest{Document: doc, Op: op, Fallback: "texto simples"})
	require.NoError(t, err)
	return strings.NewReader(string(data))
}

func TestPostHandler_Blocks(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)

	doc := content.Document{content.HeadingBlock{Text: "Guia"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/api/blocks",
		blocksRequestBody(t, doc, content.Op{Name: content.OpAdd, Kind: content.KindText}))
	rec := httptest.NewRecorder()
	h.Blocks(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Success  bool             `json:"success"`
		Document content.Document `json:"document"`
		Active   int              `json:"active"`
		Changed  bool             `json:"changed"`
		HTML     string           `json:"html"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.True(t, resp.Success)
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.Active)
	assert.Equal(t, content.Document{
		content.HeadingBlock{Text: "Guia"},
		content.TextBlock{FontSize: content.DefaultFontSize, Color: content.DefaultColor},
	}, resp.Document)
	assert.Contains(t, resp.HTML, "Guia")
	assert.NotContains(t, resp.HTML, "texto simples")
}

func TestPostHandler_Blocks_UpdateAndFallback(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)

	text := "Olá"
	req := httptest.NewRequest(http.MethodPost, "/admin/api/blocks",
		blocksRequestBody(t, content.Document{content.TextBlock{}}, content.Op{
			Name:  content.OpUpdate,
			Index: 0,
			Patch: content.Patch{Text: &text},
		}))
	rec := httptest.NewRecorder()
	h.Blocks(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Olá")

	// Removing the last block leaves an empty document: the fallback is shown.
	req = httptest.NewRequest(http.MethodPost, "/admin/api/blocks",
		blocksRequestBody(t, content.Document{content.TextBlock{Text: "x"}}, content.Op{Name: content.OpRemove, Index: 0}))
	rec = httptest.NewRecorder()
	h.Blocks(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "texto simples")
}

func TestPostHandler_Blocks_Errors(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"document":`, http.StatusBadRequest},
		{"unknown field", `{"document":null,"op":{"op":"add","kind":"text"},"extra":1}`, http.StatusBadRequest},
		{"unknown op", `{"document":[],"op":{"op":"paste"}}`, http.StatusUnprocessableEntity},
		{"out of range", `{"document":[],"op":{"op":"remove","index":0}}`, http.StatusUnprocessableEntity},
		{"bad direction", `{"document":[{"type":"text"}],"op":{"op":"move","index":0,"direction":"left"}}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/api/blocks", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Blocks(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestPostHandler_New(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)

	req := env.asAdmin(env.get(t, "/admin/posts/new"))
	rec := httptest.NewRecorder()
	h.New(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Novo Post")
	assert.Contains(t, body, `action="/admin/posts"`)
	assert.Contains(t, body, `value="add:text"`)
	assert.Contains(t, body, `value="add:image"`)
}

func TestPostHandler_EditorActionDoesNotPersist(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)

	form := url.Values{
		"title":       {"Rascunho"},
		"category":    {model.CategoryBuild},
		fieldDocument: {`[{"type":"heading","content":"A"}]`},
		fieldAction:   {"add:image"},
	}
	req := env.asAdmin(env.postForm(t, "/admin/posts", form))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="block_url_1"`)
	assert.Contains(t, body, "block-active")
	assert.Contains(t, body, `value="Rascunho"`)

	n, err := env.posts.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostHandler_CreateSave(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)

	form := url.Values{
		"title":        {"Guia de Build"},
		"category":     {model.CategoryGuide},
		"content":      {"texto"},
		"published":    {"on"},
		fieldDocument:  {`[{"type":"text","content":"antes","fontSize":"16px","color":"#fef3c7"}]`},
		"block_text_0": {"depois"},
		fieldAction:    {"save"},
	}
	req := env.asAdmin(env.postForm(t, "/admin/posts", form))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, redirectBlogTab, rec.Header().Get("Location"))
	msg, kind := env.flash(req)
	assert.Equal(t, "Post salvo com sucesso!", msg)
	assert.Equal(t, render.FlashSuccess, kind)

	posts, err := env.posts.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Guia de Build", posts[0].Title)
	assert.True(t, posts[0].Published)
	assert.Equal(t, content.Document{
		content.TextBlock{Text: "depois", FontSize: "16px", Color: "#fef3c7"},
	}, posts[0].Body)
}

func TestPostHandler_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)

	form := url.Values{"title": {"  "}, fieldAction: {"save"}}
	req := env.asAdmin(env.postForm(t, "/admin/posts", form))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "O título é obrigatório")
}

func TestPostHandler_MalformedDocumentIsDiscarded(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)

	form := url.Values{"title": {"T"}, fieldDocument: {`{"broken":true}`}, fieldAction: {"save"}}
	req := env.asAdmin(env.postForm(t, "/admin/posts", form))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "O conteúdo do editor é inválido")
}

func TestPostHandler_UpdateTogglePublishDelete(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)
	ctx := context.Background()

	p := env.createPost(t, service.PostInput{Title: "Original", Content: "c"})

	form := url.Values{"title": {"Editado"}, "category": {model.CategoryNews}, fieldAction: {"save"}}
	req := requestWithURLParams(env.asAdmin(env.postForm(t, "/admin/posts/"+p.ID, form)), map[string]string{"id": p.ID})
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := env.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Editado", got.Title)
	assert.Equal(t, model.CategoryNews, got.Category)
	assert.False(t, got.Published)

	req = requestWithURLParams(env.asAdmin(env.postForm(t, "/admin/posts/"+p.ID+"/publish", nil)), map[string]string{"id": p.ID})
	rec = httptest.NewRecorder()
	h.TogglePublish(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	msg, _ := env.flash(req)
	assert.Equal(t, "Post publicado", msg)

	got, err = env.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Published)

	req = requestWithURLParams(env.asAdmin(env.postForm(t, "/admin/posts/"+p.ID+"/delete", nil)), map[string]string{"id": p.ID})
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	_, err = env.posts.Get(ctx, p.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostHandler_EditNotFound(t *testing.T) {
	env := newTestEnv(t)
	h := NewPostHandler(env.renderer, env.posts)

	req := requestWithURLParams(env.asAdmin(env.get(t, "/admin/posts/missing")), map[string]string{"id": "missing"})
	rec := httptest.NewRecorder()
	h.Edit(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	msg, kind := env.flash(req)
	assert.Equal(t, "Post não encontrado", msg)
	assert.Equal(t, render.FlashError, kind)
}
