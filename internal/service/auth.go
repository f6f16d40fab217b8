// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/ngl-guild/internal/auth"
	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/store"
)

// AuthService authenticates admin accounts.
type AuthService struct {
	queries *store.Queries
	now     func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates an AuthService.
func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{queries: store.New(db), now: time.Now}
}

// dummy returns a hash checked against when the username is unknown, so
// both failure paths cost the same.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := auth.HashPassword("not-a-real-password")
		if err != nil {
			slog.Error("failed to create dummy hash", "error", err)
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// Authenticate checks the credentials and returns the admin. Any mismatch
// returns ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	acct, err := s.queries.GetAdminAccountByUsername(ctx, username)
	if err != nil {
		if store.IsNotFound(err) {
			_, _ = auth.CheckPassword(password, s.dummy())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading admin account: %w", err)
	}

	ok, err := auth.CheckPassword(password, acct.PasswordHash)
	if err != nil {
		slog.Error("stored password hash is invalid", "admin_id", acct.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.queries.UpdateAdminLastLogin(ctx, store.UpdateAdminLastLoginParams{
		LastLoginAt: sql.NullTime{Time: now, Valid: true},
		ID:          acct.ID,
	}); err != nil {
		slog.Warn("failed to update last login", "admin_id", acct.ID, "error", err)
	}

	if auth.NeedsRehash(acct.PasswordHash) {
		if h, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateAdminPassword(ctx, store.UpdateAdminPasswordParams{
				PasswordHash: h,
				ID:           acct.ID,
			}); err != nil {
				slog.Warn("failed to rehash admin password", "admin_id", acct.ID, "error", err)
			}
		}
	}

	return &model.Admin{
		ID:          acct.ID,
		Username:    acct.Username,
		CreatedAt:   acct.CreatedAt,
		LastLoginAt: sql.NullTime{Time: now, Valid: true},
	}, nil
}

// GetAdmin returns the admin with the given id.
func (s *AuthService) GetAdmin(ctx context.Context, id int64) (*model.Admin, error) {
	acct, err := s.queries.GetAdminAccountByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "loading admin")
	}
	return &model.Admin{
		ID:          acct.ID,
		Username:    acct.Username,
		CreatedAt:   acct.CreatedAt,
		LastLoginAt: acct.LastLoginAt,
	}, nil
}
