// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/store"
)

// AuditRecord describes an admin action to record.
type AuditRecord struct {
	AdminID    int64 // 0 for system actions
	Level      string
	Category   string
	Action     string
	TargetType string
	TargetID   string
	Details    map[string]string
}

// AuditPage is one page of the audit log.
type AuditPage struct {
	Entries []model.AuditEntry
	Total   int64
	Page    int
	PerPage int
}

// TotalPages returns the number of pages, at least 1.
func (p AuditPage) TotalPages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// AuditService writes and reads the audit log.
type AuditService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewAuditService creates an AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{queries: store.New(db), now: time.Now}
}

// Log records rec.
func (s *AuditService) Log(ctx context.Context, rec AuditRecord) error {
	return s.log(ctx, s.queries, rec)
}

func (s *AuditService) log(ctx context.Context, q *store.Queries, rec AuditRecord) error {
	var adminID sql.NullInt64
	if rec.AdminID != 0 {
		adminID = sql.NullInt64{Int64: rec.AdminID, Valid: true}
	}
	if rec.Level == "" {
		rec.Level = model.AuditLevelInfo
	}
	if rec.Category == "" {
		rec.Category = model.AuditCategorySystem
	}

	_, err := q.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
		ID:         uuid.NewString(),
		AdminID:    adminID,
		Level:      rec.Level,
		Category:   rec.Category,
		Action:     rec.Action,
		TargetType: rec.TargetType,
		TargetID:   rec.TargetID,
		Details:    model.DetailsToJSON(rec.Details),
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("writing audit entry %s: %w", rec.Action, err)
	}
	return nil
}

// List returns a page of the audit log, newest first. Pages start at 1.
func (s *AuditService) List(ctx context.Context, page, perPage int) (AuditPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}

	total, err := s.queries.CountAuditEntries(ctx)
	if err != nil {
		return AuditPage{}, fmt.Errorf("counting audit entries: %w", err)
	}
	rows, err := s.queries.ListAuditEntries(ctx, store.ListAuditEntriesParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		return AuditPage{}, fmt.Errorf("listing audit entries: %w", err)
	}

	entries := make([]model.AuditEntry, len(rows))
	for i, r := range rows {
		entries[i] = model.AuditEntry{
			ID:         r.ID,
			AdminID:    r.AdminID,
			Level:      r.Level,
			Category:   r.Category,
			Action:     r.Action,
			TargetType: r.TargetType,
			TargetID:   r.TargetID,
			Details:    r.Details,
			CreatedAt:  r.CreatedAt,
		}
	}
	return AuditPage{Entries: entries, Total: total, Page: page, PerPage: perPage}, nil
}

// Prune deletes entries older than olderThan and records the prune when
// anything was removed. A non-positive olderThan keeps everything.
func (s *AuditService) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-olderThan)
	n, err := s.queries.DeleteAuditEntriesBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning audit log: %w", err)
	}
	if n > 0 {
		slog.Info("pruned audit log", "removed", n, "cutoff", cutoff)
		_ = s.Log(ctx, AuditRecord{
			Action:  model.ActionPruneAuditLog,
			Details: map[string]string{"removed": strconv.FormatInt(n, 10)},
		})
	}
	return n, nil
}
