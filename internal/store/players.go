// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const playerColumns = `id, nickname, player_id, platform, primary_weapon, secondary_weapon,
	build_type, level, combat_power, professions, guild_role, availability_days,
	availability_time, content_interest, has_microphone, discord_required, age,
	discord_id, game_platform_id, streaming_link, character_image, build_image,
	guild_motivation, bio, gamer_personality, created_at, updated_at`

func scanPlayer(row rowScanner) (Player, error) {
	var p Player
	err := row.Scan(
		&p.ID, &p.Nickname, &p.PlayerID, &p.Platform, &p.PrimaryWeapon, &p.SecondaryWeapon,
		&p.BuildType, &p.Level, &p.CombatPower, &p.Professions, &p.GuildRole, &p.AvailabilityDays,
		&p.AvailabilityTime, &p.ContentInterest, &p.HasMicrophone, &p.DiscordRequired, &p.Age,
		&p.DiscordID, &p.GamePlatformID, &p.StreamingLink, &p.CharacterImage, &p.BuildImage,
		&p.GuildMotivation, &p.Bio, &p.GamerPersonality, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// PlayerFields are the editable columns of a player.
type PlayerFields struct {
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
}

func (f PlayerFields) args() []any {
	return []any{
		f.Nickname, f.PlayerID, f.Platform, f.PrimaryWeapon, f.SecondaryWeapon,
		f.BuildType, f.Level, f.CombatPower, f.Professions, f.GuildRole, f.AvailabilityDays,
		f.AvailabilityTime, f.ContentInterest, f.HasMicrophone, f.DiscordRequired, f.Age,
		f.DiscordID, f.GamePlatformID, f.StreamingLink, f.CharacterImage, f.BuildImage,
		f.GuildMotivation, f.Bio, f.GamerPersonality,
	}
}

// CreatePlayerParams holds a new player row.
type CreatePlayerParams struct {
	ID string
	PlayerFields
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createPlayer = `INSERT INTO players (id, nickname, player_id, platform, primary_weapon, secondary_weapon,
	build_type, level, combat_power, professions, guild_role, availability_days,
	availability_time, content_interest, has_microphone, discord_required, age,
	discord_id, game_platform_id, streaming_link, character_image, build_image,
	guild_motivation, bio, gamer_personality, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + playerColumns

// CreatePlayer inserts a player.
func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	args := append([]any{arg.ID}, arg.PlayerFields.args()...)
	args = append(args, arg.CreatedAt, arg.UpdatedAt)
	return scanPlayer(q.db.QueryRowContext(ctx, createPlayer, args...))
}

const getPlayer = `SELECT ` + playerColumns + ` FROM players WHERE id = ?`

// GetPlayer returns the player with the given id.
func (q *Queries) GetPlayer(ctx context.Context, id string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayer, id))
}

// UpdatePlayerParams replaces every editable column of a player.
type UpdatePlayerParams struct {
	PlayerFields
	UpdatedAt time.Time
	ID        string
}

const updatePlayer = `UPDATE players SET
	nickname = ?, player_id = ?, platform = ?, primary_weapon = ?, secondary_weapon = ?,
	build_type = ?, level = ?, combat_power = ?, professions = ?, guild_role = ?, availability_days = ?,
	availability_time = ?, content_interest = ?, has_microphone = ?, discord_required = ?, age = ?,
	discord_id = ?, game_platform_id = ?, streaming_link = ?, character_image = ?, build_image = ?,
	guild_motivation = ?, bio = ?, gamer_personality = ?, updated_at = ?
WHERE id = ?
RETURNING ` + playerColumns

// UpdatePlayer replaces a player's editable columns.
func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (Player, error) {
	args := append(arg.PlayerFields.args(), arg.UpdatedAt, arg.ID)
	return scanPlayer(q.db.QueryRowContext(ctx, updatePlayer, args...))
}

const deletePlayer = `DELETE FROM players WHERE id = ?`

// DeletePlayer removes a player. Returns ErrNotFound when no row matched.
func (q *Queries) DeletePlayer(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, deletePlayer, id)
	if err != nil {
		return err
	}
	return affectedOne(res)
}

const listPlayers = `SELECT ` + playerColumns + ` FROM players ORDER BY created_at DESC`

// ListPlayers returns all players, newest first.
func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const countPlayers = `SELECT COUNT(*) FROM players`

// CountPlayers returns the number of players.
func (q *Queries) CountPlayers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPlayers).Scan(&n)
	return n, err
}

// Fields returns the editable columns of p.
func (p Player) Fields() PlayerFields {
	return PlayerFields{
		Nickname:         p.Nickname,
		PlayerID:         p.PlayerID,
		Platform:         p.Platform,
		PrimaryWeapon:    p.PrimaryWeapon,
		SecondaryWeapon:  p.SecondaryWeapon,
		BuildType:        p.BuildType,
		Level:            p.Level,
		CombatPower:      p.CombatPower,
		Professions:      p.Professions,
		GuildRole:        p.GuildRole,
		AvailabilityDays: p.AvailabilityDays,
		AvailabilityTime: p.AvailabilityTime,
		ContentInterest:  p.ContentInterest,
		HasMicrophone:    p.HasMicrophone,
		DiscordRequired:  p.DiscordRequired,
		Age:              p.Age,
		DiscordID:        p.DiscordID,
		GamePlatformID:   p.GamePlatformID,
		StreamingLink:    p.StreamingLink,
		CharacterImage:   p.CharacterImage,
		BuildImage:       p.BuildImage,
		GuildMotivation:  p.GuildMotivation,
		Bio:              p.Bio,
		GamerPersonality: p.GamerPersonality,
	}
}
