// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the portal's HTTP handlers.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/ngl-guild/internal/render"
	"github.com/olegiv/ngl-guild/internal/service"
)

// flashAndRedirect sets a flash message and redirects with 303.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashError)
}

func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Erro interno do servidor", http.StatusInternalServerError, logMsg, args...)
}

// renderPage renders a page and logs render failures as 500s.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, name string, data render.TemplateData) {
	renderStatus(w, r, renderer, http.StatusOK, name, data)
}

func renderStatus(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name string, data render.TemplateData) {
	if err := renderer.RenderStatus(w, r, status, name, data); err != nil {
		logAndInternalError(w, "failed to render template", "template", name, "error", err)
	}
}

// notFoundPage renders the public 404 page.
func notFoundPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer) {
	renderStatus(w, r, renderer, http.StatusNotFound, "public/error", render.TemplateData{
		Title: "Página não encontrada",
		Data:  "A página que você procura não existe.",
	})
}

// serviceError writes the response for a service failure: 404 for
// ErrNotFound, 500 otherwise.
func serviceError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, err error, logMsg string, args ...any) {
	if errors.Is(err, service.ErrNotFound) {
		notFoundPage(w, r, renderer)
		return
	}
	logAndInternalError(w, logMsg, append(args, "error", err)...)
}

// validationErrors returns the field messages of a validation error, or nil.
func validationErrors(err error) map[string]string {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrNotFound)
}
