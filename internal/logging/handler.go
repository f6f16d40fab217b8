// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that copies WARN and ERROR
// records into the audit log so operators see them next to admin actions.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/store"
)

// AuditLogHandler is a slog.Handler that wraps another handler and also
// writes records at or above its level to the audit_log table.
type AuditLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewAuditLogHandler wraps inner, forwarding WARN and above to the audit log.
func NewAuditLogHandler(inner slog.Handler, db *sql.DB) *AuditLogHandler {
	return NewAuditLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewAuditLogHandlerWithLevel wraps inner with a custom minimum level.
func NewAuditLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *AuditLogHandler {
	return &AuditLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *AuditLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.write(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *AuditLogHandler) WithGroup(name string) slog.Handler {
	return &AuditLogHandler{inner: h.inner.WithGroup(name), queries: h.queries, level: h.level}
}

// write stores r in the audit log. A background context is used so the
// entry survives a cancelled request. Write failures are dropped; logging
// them here would recurse.
func (h *AuditLogHandler) write(r slog.Record) {
	details := map[string]string{"message": r.Message}
	category := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return true
		}
		details[a.Key] = a.Value.String()
		return true
	})
	if category == "" {
		category = inferCategory(r.Message)
	}

	_, _ = h.queries.CreateAuditEntry(context.Background(), store.CreateAuditEntryParams{
		ID:        uuid.NewString(),
		Level:     auditLevel(r.Level),
		Category:  category,
		Action:    model.ActionLog,
		Details:   model.DetailsToJSON(details),
		CreatedAt: r.Time.UTC(),
	})
}

func auditLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.AuditLevelError
	case level >= slog.LevelWarn:
		return model.AuditLevelWarning
	default:
		return model.AuditLevelInfo
	}
}

// inferCategory guesses a category from common words in the message.
func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") || strings.Contains(msg, "logout"):
		return model.AuditCategoryAuth
	case strings.Contains(msg, "player"):
		return model.AuditCategoryPlayer
	case strings.Contains(msg, "post") || strings.Contains(msg, "blog") || strings.Contains(msg, "document"):
		return model.AuditCategoryBlog
	case strings.Contains(msg, "cache"):
		return model.AuditCategoryCache
	case strings.Contains(msg, "config") || strings.Contains(msg, "setting"):
		return model.AuditCategoryConfig
	default:
		return model.AuditCategorySystem
	}
}
