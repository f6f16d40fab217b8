// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// AdminAccount is a row of admin_accounts.
type AdminAccount struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// Player is a row of players. List-valued columns hold JSON arrays.
type Player struct {
	ID               string
	Nickname         string
	PlayerID         string
	Platform         string
	PrimaryWeapon    string
	SecondaryWeapon  string
	BuildType        string
	Level            int64
	CombatPower      int64
	Professions      string
	GuildRole        string
	AvailabilityDays string
	AvailabilityTime string
	ContentInterest  string
	HasMicrophone    bool
	DiscordRequired  bool
	Age              int64
	DiscordID        string
	GamePlatformID   string
	StreamingLink    string
	CharacterImage   string
	BuildImage       string
	GuildMotivation  string
	Bio              string
	GamerPersonality string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BlogPost is a row of blog_posts. Content is the plain-text fallback and
// ContentJSON the optional encoded block document.
type BlogPost struct {
	ID          string
	Title       string
	Content     string
	Category    string
	ContentJSON sql.NullString
	ImageUrl    string
	YoutubeUrl  string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuditEntry is a row of audit_log.
type AuditEntry struct {
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
