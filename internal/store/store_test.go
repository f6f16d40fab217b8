// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "ngl-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() { _ = db.Close() }
}

func TestAdminAccounts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	n, err := q.CountAdminAccounts(ctx)
	if err != nil {
		t.Fatalf("CountAdminAccounts: %v", err)
	}
	if n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}

	acc, err := q.CreateAdminAccount(ctx, CreateAdminAccountParams{
		Username:     "lider",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAdminAccount: %v", err)
	}
	if acc.ID == 0 || acc.Username != "lider" {
		t.Fatalf("unexpected account: %+v", acc)
	}
	if acc.LastLoginAt.Valid {
		t.Error("new account should have no last login")
	}

	got, err := q.GetAdminAccountByUsername(ctx, "lider")
	if err != nil {
		t.Fatalf("GetAdminAccountByUsername: %v", err)
	}
	if got.ID != acc.ID {
		t.Errorf("ID = %d, want %d", got.ID, acc.ID)
	}

	if err := q.UpdateAdminLastLogin(ctx, UpdateAdminLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
		ID:          acc.ID,
	}); err != nil {
		t.Fatalf("UpdateAdminLastLogin: %v", err)
	}
	got, err = q.GetAdminAccountByID(ctx, acc.ID)
	if err != nil {
		t.Fatalf("GetAdminAccountByID: %v", err)
	}
	if !got.LastLoginAt.Valid {
		t.Error("last login not recorded")
	}

	_, err = q.GetAdminAccountByUsername(ctx, "nobody")
	if !IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db, "guildmaster", "s3cret-pass"); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Second run is a no-op.
	if err := Seed(ctx, db, "other", "x"); err != nil {
		t.Fatalf("Seed again: %v", err)
	}

	q := New(db)
	n, err := q.CountAdminAccounts(ctx)
	if err != nil {
		t.Fatalf("CountAdminAccounts: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
	acc, err := q.GetAdminAccountByUsername(ctx, "guildmaster")
	if err != nil {
		t.Fatalf("GetAdminAccountByUsername: %v", err)
	}
	if acc.PasswordHash == "s3cret-pass" {
		t.Error("password stored in plain text")
	}
}

func newPlayerParams(id, nick string, created time.Time) CreatePlayerParams {
	return CreatePlayerParams{
		ID: id,
		PlayerFields: PlayerFields{
			Nickname:         nick,
			PrimaryWeapon:    "Sword",
			SecondaryWeapon:  "Fan",
			BuildType:        "DPS",
			Level:            80,
			CombatPower:      120000,
			Professions:      `["Medicina"]`,
			AvailabilityDays: `["Sábado","Domingo"]`,
			ContentInterest:  `[]`,
			GamerPersonality: `[]`,
			HasMicrophone:    true,
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestPlayers(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first, err := q.CreatePlayer(ctx, newPlayerParams("p1", "Lanca", base))
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	if !first.HasMicrophone || first.DiscordRequired {
		t.Errorf("booleans not round-tripped: %+v", first)
	}
	if first.AvailabilityDays != `["Sábado","Domingo"]` {
		t.Errorf("AvailabilityDays = %q", first.AvailabilityDays)
	}
	if _, err := q.CreatePlayer(ctx, newPlayerParams("p2", "Leque", base.Add(time.Hour))); err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}

	list, err := q.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(list) != 2 || list[0].ID != "p2" {
		t.Fatalf("ListPlayers order wrong: %+v", list)
	}

	fields := first.Fields()
	fields.Level = 85
	fields.Bio = "novo"
	updated, err := q.UpdatePlayer(ctx, UpdatePlayerParams{
		PlayerFields: fields,
		UpdatedAt:    base.Add(2 * time.Hour),
		ID:           "p1",
	})
	if err != nil {
		t.Fatalf("UpdatePlayer: %v", err)
	}
	if updated.Level != 85 || updated.Bio != "novo" || updated.Nickname != "Lanca" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	_, err = q.UpdatePlayer(ctx, UpdatePlayerParams{PlayerFields: fields, ID: "missing"})
	if !IsNotFound(err) {
		t.Errorf("update missing: err = %v, want not found", err)
	}

	if err := q.DeletePlayer(ctx, "p1"); err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}
	if err := q.DeletePlayer(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}

	n, err := q.CountPlayers(ctx)
	if err != nil {
		t.Fatalf("CountPlayers: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestBlogPosts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := sql.NullString{String: `[{"type":"text","content":"oi"}]`, Valid: true}

	mk := func(id, category string, published bool, at time.Time, body sql.NullString) BlogPost {
		t.Helper()
		p, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
			ID:          id,
			Title:       "Post " + id,
			Content:     "fallback " + id,
			Category:    category,
			ContentJSON: body,
			Published:   published,
			CreatedAt:   at,
			UpdatedAt:   at,
		})
		if err != nil {
			t.Fatalf("CreateBlogPost %s: %v", id, err)
		}
		return p
	}

	a := mk("a", "PvP", true, base, doc)
	mk("b", "Guide", true, base.Add(time.Hour), sql.NullString{})
	mk("c", "PvP", false, base.Add(2*time.Hour), sql.NullString{})

	if !a.ContentJSON.Valid || a.ContentJSON.String != doc.String {
		t.Errorf("ContentJSON = %+v", a.ContentJSON)
	}

	all, err := q.ListBlogPosts(ctx)
	if err != nil {
		t.Fatalf("ListBlogPosts: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" {
		t.Fatalf("ListBlogPosts = %+v", all)
	}

	pub, err := q.ListPublishedBlogPosts(ctx)
	if err != nil {
		t.Fatalf("ListPublishedBlogPosts: %v", err)
	}
	if len(pub) != 2 || pub[0].ID != "b" {
		t.Fatalf("ListPublishedBlogPosts = %+v", pub)
	}

	pvp, err := q.ListPublishedBlogPostsByCategory(ctx, "PvP")
	if err != nil {
		t.Fatalf("ListPublishedBlogPostsByCategory: %v", err)
	}
	if len(pvp) != 1 || pvp[0].ID != "a" {
		t.Fatalf("by category = %+v", pvp)
	}

	if _, err := q.GetPublishedBlogPost(ctx, "c"); !IsNotFound(err) {
		t.Errorf("draft visible as published: %v", err)
	}

	up, err := q.UpdateBlogPost(ctx, UpdateBlogPostParams{
		Title:     "Renamed",
		Content:   "new fallback",
		Category:  "PvP",
		Published: true,
		UpdatedAt: base.Add(3 * time.Hour),
		ID:        "a",
	})
	if err != nil {
		t.Fatalf("UpdateBlogPost: %v", err)
	}
	if up.Title != "Renamed" || up.ContentJSON.Valid {
		t.Errorf("document column not replaced whole: %+v", up)
	}

	toggled, err := q.SetBlogPostPublished(ctx, SetBlogPostPublishedParams{
		Published: true, UpdatedAt: base.Add(4 * time.Hour), ID: "c",
	})
	if err != nil {
		t.Fatalf("SetBlogPostPublished: %v", err)
	}
	if !toggled.Published {
		t.Error("post c should be published")
	}

	if err := q.DeleteBlogPost(ctx, "b"); err != nil {
		t.Fatalf("DeleteBlogPost: %v", err)
	}
	if err := q.DeleteBlogPost(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
	n, err := q.CountBlogPosts(ctx)
	if err != nil {
		t.Fatalf("CountBlogPosts: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestAuditLog(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now().UTC()
	for i, age := range []time.Duration{0, 48 * time.Hour, 24 * 40 * time.Hour} {
		_, err := q.CreateAuditEntry(ctx, CreateAuditEntryParams{
			ID:         string(rune('a' + i)),
			Level:      "info",
			Category:   "blog",
			Action:     "create_blog_post",
			TargetType: "blog_post",
			TargetID:   "x",
			Details:    "{}",
			CreatedAt:  now.Add(-age),
		})
		if err != nil {
			t.Fatalf("CreateAuditEntry: %v", err)
		}
	}

	entries, err := q.ListAuditEntries(ctx, ListAuditEntriesParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	if len(entries) != 3 || entries[0].ID != "a" {
		t.Fatalf("ListAuditEntries = %+v", entries)
	}
	if entries[0].AdminID.Valid {
		t.Error("system entry should have no admin")
	}

	removed, err := q.DeleteAuditEntriesBefore(ctx, now.Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteAuditEntriesBefore: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	n, err := q.CountAuditEntries(ctx)
	if err != nil {
		t.Fatalf("CountAuditEntries: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
