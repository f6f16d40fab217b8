// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Weapons a player can pick as primary or secondary.
var Weapons = []Option{
	{"Sword", "Sword"},
	{"Spear", "Spear"},
	{"Fan", "Fan"},
	{"Mo Blade", "Mo Blade"},
	{"Dual Blades", "Dual Blades"},
	{"Umbrella", "Umbrella"},
	{"Rope Dart", "Rope Dart"},
}

// BuildTypes are the combat roles of a build.
var BuildTypes = []Option{
	{"DPS", "DPS"},
	{"Tank", "Tank"},
	{"Support", "Support/Healer"},
	{"CC", "Controle/CC"},
}

// Platforms a player can play on.
var Platforms = []Option{
	{"PC", "PC"},
	{"Console", "Console"},
}

// GuildRoles are the roles a player can take in the guild.
var GuildRoles = []Option{
	{"Combatente", "Combatente"},
	{"Gatherer", "Gatherer/Farming"},
	{"Crafter", "Crafter"},
	{"PVP", "PVP Squad"},
	{"PVE", "PVE Progress"},
}

// TimeSlots are the periods of day a player is available.
var TimeSlots = []Option{
	{"Manhã", "Manhã"},
	{"Tarde", "Tarde"},
	{"Noite", "Noite"},
	{"Madrugada", "Madrugada"},
}

// Multi-choice vocabularies.
var (
	Professions        = []string{"Médico", "Eremita"}
	Weekdays           = []string{"Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado", "Domingo"}
	ContentInterests   = []string{"PvP", "PvE", "World Bosses", "Eventos", "Roleplay"}
	GamerPersonalities = []string{"Competitivo", "Casual", "Tryhard", "Farmer", "Social", "Colecionador", "Explorador"}
)

// Player is a registered guild member.
type Player struct {
	ID               string    `json:"id"`
	Nickname         string    `json:"nickname"`
	PlayerID         string    `json:"player_id"`
	Platform         string    `json:"platform"`
	PrimaryWeapon    string    `json:"primary_weapon"`
	SecondaryWeapon  string    `json:"secondary_weapon"`
	BuildType        string    `json:"build_type"`
	Level            int       `json:"level"`
	CombatPower      int       `json:"combat_power"`
	Professions      []string  `json:"professions"`
	GuildRole        string    `json:"guild_role"`
	AvailabilityDays []string  `json:"availability_days"`
	AvailabilityTime string    `json:"availability_time"`
	ContentInterest  []string  `json:"content_interest"`
	HasMicrophone    bool      `json:"has_microphone"`
	DiscordRequired  bool      `json:"discord_required"`
	Age              int       `json:"age"`
	DiscordID        string    `json:"discord_id"`
	GamePlatformID   string    `json:"game_platform_id"`
	StreamingLink    string    `json:"streaming_link"`
	CharacterImage   string    `json:"character_image"`
	BuildImage       string    `json:"build_image"`
	GuildMotivation  string    `json:"guild_motivation"`
	Bio              string    `json:"bio"`
	GamerPersonality []string  `json:"gamer_personality"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BuildLabel returns the display label of the player's build type.
func (p *Player) BuildLabel() string {
	return labelOf(BuildTypes, p.BuildType)
}

// GuildRoleLabel returns the display label of the player's guild role.
func (p *Player) GuildRoleLabel() string {
	return labelOf(GuildRoles, p.GuildRole)
}

// Weapons returns the non-empty weapons of the player, primary first.
func (p *Player) Weapons() []string {
	var out []string
	for _, w := range []string{p.PrimaryWeapon, p.SecondaryWeapon} {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func labelOf(opts []Option, v string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}
