// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/ngl-guild/internal/auth"
)

// Default admin credentials, used when none are configured.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
)

// Seed creates the admin account when the database has none.
func Seed(ctx context.Context, db *sql.DB, username, password string) error {
	queries := New(db)

	n, err := queries.CountAdminAccounts(ctx)
	if err != nil {
		return fmt.Errorf("counting admin accounts: %w", err)
	}
	if n > 0 {
		slog.Info("admin account already exists, skipping seed")
		return nil
	}

	if username == "" {
		username = DefaultAdminUsername
	}
	generated := password == ""
	if generated {
		password = DefaultAdminPassword
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	account, err := queries.CreateAdminAccount(ctx, CreateAdminAccountParams{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	if generated {
		slog.Warn("created admin account with default password, change it",
			"id", account.ID,
			"username", account.Username,
		)
	} else {
		slog.Info("created admin account", "id", account.ID, "username", account.Username)
	}

	return nil
}
