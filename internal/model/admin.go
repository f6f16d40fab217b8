// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Admin is an authenticated administrator.
type Admin struct {
	ID          int64        `json:"id"`
	Username    string       `json:"username"`
	CreatedAt   time.Time    `json:"created_at"`
	LastLoginAt sql.NullTime `json:"last_login_at,omitempty"`
}
