// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the SQLite record store: connection setup,
// embedded goose migrations and typed queries for admin accounts, players,
// blog posts and the audit log.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// Options sizes the connection pool and sets the lock wait.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	// BusyTimeout is how long a writer waits on a locked database.
	BusyTimeout time.Duration
}

// DefaultOptions fits the portal's load: page views and exports read,
// while registrations, profile edits and admin actions write a row at a time.
// The audit log handler writes from the request goroutine, so the pool keeps
// a few connections beyond the reader count.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    8,
		MaxIdleConns:    4,
		ConnMaxIdleTime: 10 * time.Minute,
		BusyTimeout:     5 * time.Second,
	}
}

// connPragmas are applied by the driver to every new connection.
// foreign_keys is per connection in SQLite, so it cannot be set once
// with Exec on a pooled handle.
var connPragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"foreign_keys(ON)",
	"temp_store(MEMORY)",
}

// DSN builds the modernc sqlite connection string for path.
func DSN(path string, opts Options) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", opts.BusyTimeout.Milliseconds()))
	// Service transactions read then write; take the write lock up front so
	// they never fail with SQLITE_BUSY on upgrade.
	q.Set("_txlock", "immediate")
	return filepath.Clean(path) + "?" + q.Encode()
}

// NewDB opens the portal database at path with DefaultOptions.
func NewDB(path string) (*sql.DB, error) {
	return NewDBWithOptions(path, DefaultOptions())
}

// NewDBWithOptions opens the portal database at path.
func NewDBWithOptions(path string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is required")
	}

	db, err := sql.Open("sqlite", DSN(path, opts))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := checkForeignKeys(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// checkForeignKeys fails when the driver ignored the connection pragmas.
// Removing an admin account relies on ON DELETE SET NULL in audit_log.
func checkForeignKeys(db *sql.DB) error {
	var on int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&on); err != nil {
		return fmt.Errorf("reading foreign_keys pragma: %w", err)
	}
	if on != 1 {
		return errors.New("sqlite foreign keys are disabled")
	}
	return nil
}

// Migrate runs all pending database migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
