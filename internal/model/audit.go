// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Audit levels
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit categories
const (
	AuditCategoryAuth   = "auth"
	AuditCategoryPlayer = "player"
	AuditCategoryBlog   = "blog"
	AuditCategoryCache  = "cache"
	AuditCategoryConfig = "config"
	AuditCategorySystem = "system"
)

// Admin actions recorded in the audit log.
const (
	ActionDeletePlayer  = "delete_player"
	ActionCreatePost    = "create_blog_post"
	ActionUpdatePost    = "update_blog_post"
	ActionDeletePost    = "delete_blog_post"
	ActionTogglePublish = "toggle_publish"
	ActionLogin         = "login"
	ActionLogout        = "logout"
	ActionPruneAuditLog = "prune_audit_log"
	ActionLog           = "log"
)

// Audit target types.
const (
	TargetPlayer   = "player"
	TargetBlogPost = "blog"
	TargetAdmin    = "admin"
)

// AuditEntry is a row of the audit log.
type AuditEntry struct {
	ID         string        `json:"id"`
	AdminID    sql.NullInt64 `json:"admin_id,omitempty"`
	Level      string        `json:"level"`
	Category   string        `json:"category"`
	Action     string        `json:"action"`
	TargetType string        `json:"target_type"`
	TargetID   string        `json:"target_id"`
	Details    string        `json:"-"` // JSON object stored as string
	CreatedAt  time.Time     `json:"created_at"`
}

// DetailsMap decodes the details JSON object.
func (e *AuditEntry) DetailsMap() map[string]string {
	out := map[string]string{}
	_ = json.Unmarshal([]byte(e.Details), &out)
	return out
}

// DetailsToJSON encodes audit details as a JSON object.
func DetailsToJSON(details map[string]string) string {
	if len(details) == 0 {
		return "{}"
	}
	b, err := json.Marshal(details)
	if err != nil {
		return "{}"
	}
	return string(b)
}
