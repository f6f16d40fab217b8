// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const auditEntryColumns = `id, admin_id, level, category, action, target_type, target_id, details, created_at`

func scanAuditEntry(row rowScanner) (AuditEntry, error) {
	var e AuditEntry
	err := row.Scan(&e.ID, &e.AdminID, &e.Level, &e.Category, &e.Action, &e.TargetType,
		&e.TargetID, &e.Details, &e.CreatedAt)
	return e, err
}

// CreateAuditEntryParams holds a new audit row.
type CreateAuditEntryParams struct {
	ID         string
	AdminID    sql.NullInt64
	Level      string
	Category   string
	Action     string
	TargetType string
	TargetID   string
	Details    string
	CreatedAt  time.Time
}

const createAuditEntry = `INSERT INTO audit_log (id, admin_id, level, category, action, target_type,
	target_id, details, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + auditEntryColumns

// CreateAuditEntry inserts an audit row.
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) (AuditEntry, error) {
	row := q.db.QueryRowContext(ctx, createAuditEntry, arg.ID, arg.AdminID, arg.Level, arg.Category,
		arg.Action, arg.TargetType, arg.TargetID, arg.Details, arg.CreatedAt)
	return scanAuditEntry(row)
}

// ListAuditEntriesParams pages through the audit log.
type ListAuditEntriesParams struct {
	Limit  int64
	Offset int64
}

const listAuditEntries = `SELECT ` + auditEntryColumns + ` FROM audit_log
ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListAuditEntries returns audit rows, newest first.
func (q *Queries) ListAuditEntries(ctx context.Context, arg ListAuditEntriesParams) ([]AuditEntry, error) {
	rows, err := q.db.QueryContext(ctx, listAuditEntries, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const countAuditEntries = `SELECT COUNT(*) FROM audit_log`

// CountAuditEntries returns the number of audit rows.
func (q *Queries) CountAuditEntries(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countAuditEntries).Scan(&n)
	return n, err
}

const deleteAuditEntriesBefore = `DELETE FROM audit_log WHERE created_at < ?`

// DeleteAuditEntriesBefore removes audit rows older than cutoff and returns how many were removed.
func (q *Queries) DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteAuditEntriesBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
