// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const adminAccountColumns = `id, username, password_hash, created_at, last_login_at`

func scanAdminAccount(row rowScanner) (AdminAccount, error) {
	var a AdminAccount
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.LastLoginAt)
	return a, err
}

// CreateAdminAccountParams holds the columns of a new admin account.
type CreateAdminAccountParams struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

const createAdminAccount = `INSERT INTO admin_accounts (username, password_hash, created_at)
VALUES (?, ?, ?)
RETURNING ` + adminAccountColumns

// CreateAdminAccount inserts an admin account.
func (q *Queries) CreateAdminAccount(ctx context.Context, arg CreateAdminAccountParams) (AdminAccount, error) {
	row := q.db.QueryRowContext(ctx, createAdminAccount, arg.Username, arg.PasswordHash, arg.CreatedAt)
	return scanAdminAccount(row)
}

const getAdminAccountByUsername = `SELECT ` + adminAccountColumns + ` FROM admin_accounts WHERE username = ?`

// GetAdminAccountByUsername returns the account with the given username.
func (q *Queries) GetAdminAccountByUsername(ctx context.Context, username string) (AdminAccount, error) {
	return scanAdminAccount(q.db.QueryRowContext(ctx, getAdminAccountByUsername, username))
}

const getAdminAccountByID = `SELECT ` + adminAccountColumns + ` FROM admin_accounts WHERE id = ?`

// GetAdminAccountByID returns the account with the given id.
func (q *Queries) GetAdminAccountByID(ctx context.Context, id int64) (AdminAccount, error) {
	return scanAdminAccount(q.db.QueryRowContext(ctx, getAdminAccountByID, id))
}

const countAdminAccounts = `SELECT COUNT(*) FROM admin_accounts`

// CountAdminAccounts returns the number of admin accounts.
func (q *Queries) CountAdminAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countAdminAccounts).Scan(&n)
	return n, err
}

// UpdateAdminLastLoginParams identifies the account and login time.
type UpdateAdminLastLoginParams struct {
	LastLoginAt sql.NullTime
	ID          int64
}

const updateAdminLastLogin = `UPDATE admin_accounts SET last_login_at = ? WHERE id = ?`

// UpdateAdminLastLogin records a successful login.
func (q *Queries) UpdateAdminLastLogin(ctx context.Context, arg UpdateAdminLastLoginParams) error {
	_, err := q.db.ExecContext(ctx, updateAdminLastLogin, arg.LastLoginAt, arg.ID)
	return err
}

// UpdateAdminPasswordParams identifies the account and its new hash.
type UpdateAdminPasswordParams struct {
	PasswordHash string
	ID           int64
}

const updateAdminPassword = `UPDATE admin_accounts SET password_hash = ? WHERE id = ?`

// UpdateAdminPassword replaces the stored password hash.
func (q *Queries) UpdateAdminPassword(ctx context.Context, arg UpdateAdminPasswordParams) error {
	res, err := q.db.ExecContext(ctx, updateAdminPassword, arg.PasswordHash, arg.ID)
	if err != nil {
		return err
	}
	return affectedOne(res)
}
