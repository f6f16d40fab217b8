// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDSN(t *testing.T) {
	dsn := DSN("./data/../data/ngl.db", Options{BusyTimeout: 2 * time.Second})

	if !strings.HasPrefix(dsn, "data/ngl.db?") {
		t.Errorf("DSN = %q, want cleaned path prefix", dsn)
	}
	for _, want := range []string{
		"_pragma=foreign_keys%28ON%29",
		"_pragma=journal_mode%28WAL%29",
		"_pragma=busy_timeout%282000%29",
		"_txlock=immediate",
	} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN = %q, missing %q", dsn, want)
		}
	}
}

func TestNewDB_EmptyPath(t *testing.T) {
	if _, err := NewDB("  "); err == nil {
		t.Fatal("NewDB with empty path: expected error")
	}
}

func TestNewDB_PragmasOnEveryConnection(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "pool.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	// Hold several connections at once so the pool has to open new ones.
	var conns []*sql.Conn
	for range 3 {
		conn, err := db.Conn(ctx)
		if err != nil {
			t.Fatalf("Conn: %v", err)
		}
		conns = append(conns, conn)
	}
	defer func() {
		for _, c := range conns {
			_ = c.Close()
		}
	}()

	for i, conn := range conns {
		var fk, busy int
		var mode string
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
			t.Fatalf("conn %d foreign_keys: %v", i, err)
		}
		if err := conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busy); err != nil {
			t.Fatalf("conn %d busy_timeout: %v", i, err)
		}
		if err := conn.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("conn %d journal_mode: %v", i, err)
		}

		if fk != 1 {
			t.Errorf("conn %d foreign_keys = %d, want 1", i, fk)
		}
		if busy != 5000 {
			t.Errorf("conn %d busy_timeout = %d, want 5000", i, busy)
		}
		if mode != "wal" {
			t.Errorf("conn %d journal_mode = %q, want wal", i, mode)
		}
	}
}
