// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ngl-guild/internal/content"
	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/service"
)

const testMapURL = "https://maps.example.com/world?embed=1"

func newPublicHandler(env *testEnv) *PublicHandler {
	return NewPublicHandler(env.renderer, env.posts, Welcome, testMapURL)
}

func TestPublicHandler_Home(t *testing.T) {
	env := newTestEnv(t)
	h := newPublicHandler(env)

	env.createPost(t, service.PostInput{Title: "Primeiro", Content: "a", Published: true})
	env.createPost(t, service.PostInput{Title: "Rascunho secreto", Content: "b"})

	rec := httptest.NewRecorder()
	h.Home(rec, env.get(t, "/"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>registrar seu personagem</strong>")
	assert.Contains(t, body, "Primeiro")
	assert.NotContains(t, body, "Rascunho secreto")
}

func TestPublicHandler_Blog(t *testing.T) {
	env := newTestEnv(t)
	h := newPublicHandler(env)

	env.createPost(t, service.PostInput{Title: "Build de Lança", Category: model.CategoryBuild, Content: "x", Published: true})
	env.createPost(t, service.PostInput{Title: "Evento de sábado", Category: model.CategoryEvent, Content: "y", Published: true})

	rec := httptest.NewRecorder()
	h.Blog(rec, env.get(t, "/blog"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Build de Lança")
	assert.Contains(t, rec.Body.String(), "Evento de sábado")

	rec = httptest.NewRecorder()
	h.Blog(rec, env.get(t, "/blog?category=Build"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Build de Lança")
	assert.NotContains(t, rec.Body.String(), "Evento de sábado")

	// Unknown categories fall back to every category.
	rec = httptest.NewRecorder()
	h.Blog(rec, env.get(t, "/blog?category=Nope"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Evento de sábado")
}

func TestPublicHandler_Post(t *testing.T) {
	env := newTestEnv(t)
	h := newPublicHandler(env)

	p := env.createPost(t, service.PostInput{
		Title:      "Guia",
		Content:    "texto simples",
		Body:       content.Document{content.HeadingBlock{Text: "Seção um"}, content.TextBlock{Text: "corpo"}},
		YoutubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Published:  true,
	})

	req := requestWithURLParams(env.get(t, "/blog/"+p.ID), map[string]string{"id": p.ID})
	rec := httptest.NewRecorder()
	h.Post(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Seção um")
	assert.Contains(t, body, "corpo")
	assert.NotContains(t, body, "texto simples")
	assert.Contains(t, body, "youtube.com/embed/dQw4w9WgXcQ")
}

func TestPublicHandler_PostFallback(t *testing.T) {
	env := newTestEnv(t)
	h := newPublicHandler(env)

	p := env.createPost(t, service.PostInput{Title: "Antigo", Content: "linha um\nlinha dois", Published: true})

	req := requestWithURLParams(env.get(t, "/blog/"+p.ID), map[string]string{"id": p.ID})
	rec := httptest.NewRecorder()
	h.Post(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "linha um\nlinha dois")
	assert.Contains(t, rec.Body.String(), "pre-wrap")
}

func TestPublicHandler_UnpublishedPostIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	h := newPublicHandler(env)

	p := env.createPost(t, service.PostInput{Title: "Oculto", Content: "x"})

	for _, id := range []string{p.ID, "does-not-exist"} {
		req := requestWithURLParams(env.get(t, "/blog/"+id), map[string]string{"id": id})
		rec := httptest.NewRecorder()
		h.Post(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.NotContains(t, rec.Body.String(), "Oculto")
	}
}

func TestPublicHandler_Map(t *testing.T) {
	env := newTestEnv(t)
	h := newPublicHandler(env)

	rec := httptest.NewRecorder()
	h.Map(rec, env.get(t, "/map"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `src="https://maps.example.com/world?embed=1"`)
}

func TestPublicHandler_NotFound(t *testing.T) {
	env := newTestEnv(t)
	h := newPublicHandler(env)

	rec := httptest.NewRecorder()
	h.NotFound(rec, env.get(t, "/nope"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Página não encontrada")
}
