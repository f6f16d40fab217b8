// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/session"
)

func TestPlayerHandler_RegisterForm(t *testing.T) {
	env := newTestEnv(t)
	h := NewPlayerHandler(env.renderer, env.sm, env.players)

	rec := httptest.NewRecorder()
	h.RegisterForm(rec, env.get(t, "/register"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="nickname"`)
	assert.Contains(t, body, `value="Rope Dart"`)
	assert.Contains(t, body, "Support/Healer")
	assert.Contains(t, body, `value="Sábado"`)
}

func TestPlayerHandler_Register(t *testing.T) {
	env := newTestEnv(t)
	h := NewPlayerHandler(env.renderer, env.sm, env.players)

	form := url.Values{
		"nickname":          {"  Lin Feng "},
		"primary_weapon":    {"Spear"},
		"build_type":        {"Tank"},
		"level":             {"60"},
		"availability_days": {"Domingo", "Sábado"},
		"bio":               {"<b>Olá</b>"},
	}
	req := env.postForm(t, "/register", form)
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/register/done", rec.Header().Get("Location"))

	id := env.sm.GetString(req.Context(), session.KeyPlayerID)
	require.NotEmpty(t, id)

	p, err := env.players.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Lin Feng", p.Nickname)
	assert.Equal(t, 60, p.Level)
	assert.Equal(t, []string{"Sábado", "Domingo"}, p.AvailabilityDays)
	assert.Equal(t, "Olá", p.Bio)

	// The done page shows the id from the same session.
	rec = httptest.NewRecorder()
	h.Registered(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id)
}

func TestPlayerHandler_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	h := NewPlayerHandler(env.renderer, env.sm, env.players)

	form := url.Values{"nickname": {""}, "platform": {"Switch"}, "bio": {"fica no formulário"}}
	rec := httptest.NewRecorder()
	h.Register(rec, env.postForm(t, "/register", form))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "O nickname é obrigatório")
	assert.Contains(t, body, "Plataforma inválida")
	assert.Contains(t, body, "fica no formulário")

	n, err := env.players.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPlayerHandler_RegisteredWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	h := NewPlayerHandler(env.renderer, env.sm, env.players)

	rec := httptest.NewRecorder()
	h.Registered(rec, env.get(t, "/register/done"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))
}

func TestPlayerHandler_List(t *testing.T) {
	env := newTestEnv(t)
	h := NewPlayerHandler(env.renderer, env.sm, env.players)

	env.registerPlayer(t, model.Player{Nickname: "Águia", PrimaryWeapon: "Sword", BuildType: "DPS", Level: 10})
	env.registerPlayer(t, model.Player{Nickname: "Bambu", PrimaryWeapon: "Fan", BuildType: "Support", Level: 20})

	rec := httptest.NewRecorder()
	h.List(rec, env.get(t, "/players"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Águia")
	assert.Contains(t, rec.Body.String(), "Bambu")

	rec = httptest.NewRecorder()
	h.List(rec, env.get(t, "/players?q=aguia"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Águia")
	assert.NotContains(t, rec.Body.String(), "Bambu")

	rec = httptest.NewRecorder()
	h.List(rec, env.get(t, "/players?weapon=Fan&build=Support"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Águia")
	assert.Contains(t, rec.Body.String(), "Bambu")
}

func TestPlayerHandler_EditLookup(t *testing.T) {
	env := newTestEnv(t)
	h := NewPlayerHandler(env.renderer, env.sm, env.players)

	rec := httptest.NewRecorder()
	h.EditLookup(rec, env.get(t, "/players/edit?id=abc"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/players/abc/edit", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.EditLookup(rec, env.get(t, "/players/edit"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="id"`)
}

func TestPlayerHandler_EditFlow(t *testing.T) {
	env := newTestEnv(t)
	h := NewPlayerHandler(env.renderer, env.sm, env.players)

	p := env.registerPlayer(t, model.Player{Nickname: "Nuvem", Level: 5})
	params := map[string]string{"id": p.ID}

	req := requestWithURLParams(env.get(t, "/players/"+p.ID+"/edit"), params)
	rec := httptest.NewRecorder()
	h.EditForm(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Nuvem"`)
	assert.Contains(t, rec.Body.String(), p.ID)

	form := url.Values{"nickname": {"Nuvem Negra"}, "level": {"6"}}
	req = requestWithURLParams(env.postForm(t, "/players/"+p.ID+"/edit", form), params)
	rec = httptest.NewRecorder()
	h.Edit(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	msg, kind := env.flash(req)
	assert.Equal(t, "Perfil atualizado com sucesso!", msg)
	assert.Equal(t, render.FlashSuccess, kind)

	got, err := env.players.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nuvem Negra", got.Nickname)
	assert.Equal(t, 6, got.Level)

	form = url.Values{"nickname": {""}}
	req = requestWithURLParams(env.postForm(t, "/players/"+p.ID+"/edit", form), params)
	rec = httptest.NewRecorder()
	h.Edit(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "O nickname é obrigatório")
}

func TestPlayerHandler_EditUnknownPlayer(t *testing.T) {
	env := newTestEnv(t)
	h := NewPlayerHandler(env.renderer, env.sm, env.players)

	for _, id := range []string{"not-a-uuid", "7f1f7a3e-8c9d-4f3a-9a57-0d1d2c3b4a59"} {
		req := requestWithURLParams(env.get(t, "/players/"+id+"/edit"), map[string]string{"id": id})
		rec := httptest.NewRecorder()
		h.EditForm(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code, id)
		assert.Equal(t, "/players/edit", rec.Header().Get("Location"))
		msg, _ := env.flash(req)
		assert.Equal(t, "Jogador não encontrado", msg)
	}
}
