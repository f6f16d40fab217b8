// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"html"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/ngl-guild/internal/model"
	"github.com/olegiv/ngl-guild/internal/store"
	"github.com/olegiv/ngl-guild/internal/util"
	"github.com/olegiv/ngl-guild/internal/webhook"
)

// Field limits for player registrations.
const (
	MaxNicknameLength = 50
	MaxShortText      = 100
	MaxLongText       = 2000
	MaxLevel          = 1000
	MaxAge            = 120
)

// textPolicy strips all markup from free-text player fields.
var textPolicy = bluemonday.StrictPolicy()

// sanitize removes markup and returns plain text. Entities escaped by the
// policy are decoded again since templates escape on output.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// PlayerService manages player registrations.
type PlayerService struct {
	db      *sql.DB
	queries *store.Queries
	audit   *AuditService
	events  EventSink
	now     func() time.Time
}

// NewPlayerService creates a PlayerService.
func NewPlayerService(db *sql.DB, audit *AuditService) *PlayerService {
	return &PlayerService{db: db, queries: store.New(db), audit: audit, now: time.Now}
}

// SetEvents sends a player.registered event to sink after each registration.
func (s *PlayerService) SetEvents(sink EventSink) {
	s.events = sink
}

// normalizePlayer sanitizes in and validates it against the vocabularies.
// Unknown values in multi-choice lists are dropped.
func normalizePlayer(in *model.Player) error {
	for _, f := range []*string{
		&in.Nickname, &in.PlayerID, &in.DiscordID, &in.GamePlatformID,
		&in.GuildMotivation, &in.Bio,
	} {
		*f = sanitize(*f)
	}
	for _, f := range []*string{
		&in.Platform, &in.PrimaryWeapon, &in.SecondaryWeapon, &in.BuildType,
		&in.GuildRole, &in.AvailabilityTime,
		&in.StreamingLink, &in.CharacterImage, &in.BuildImage,
	} {
		*f = strings.TrimSpace(*f)
	}
	in.Professions = keepKnown(in.Professions, model.Professions)
	in.AvailabilityDays = keepKnown(in.AvailabilityDays, model.Weekdays)
	in.ContentInterest = keepKnown(in.ContentInterest, model.ContentInterests)
	in.GamerPersonality = keepKnown(in.GamerPersonality, model.GamerPersonalities)

	v := validator{}
	v.check(in.Nickname != "", "nickname", "O nickname é obrigatório")
	v.check(len([]rune(in.Nickname)) <= MaxNicknameLength, "nickname", "O nickname é muito longo")
	for field, s := range map[string]string{
		"player_id":        in.PlayerID,
		"discord_id":       in.DiscordID,
		"game_platform_id": in.GamePlatformID,
	} {
		v.check(len([]rune(s)) <= MaxShortText, field, "Texto muito longo")
	}
	v.check(len([]rune(in.GuildMotivation)) <= MaxLongText, "guild_motivation", "Texto muito longo")
	v.check(len([]rune(in.Bio)) <= MaxLongText, "bio", "Texto muito longo")

	v.check(model.ValidOption(model.Platforms, in.Platform), "platform", "Plataforma inválida")
	v.check(model.ValidOption(model.Weapons, in.PrimaryWeapon), "primary_weapon", "Arma inválida")
	v.check(model.ValidOption(model.Weapons, in.SecondaryWeapon), "secondary_weapon", "Arma inválida")
	v.check(model.ValidOption(model.BuildTypes, in.BuildType), "build_type", "Build inválida")
	v.check(model.ValidOption(model.GuildRoles, in.GuildRole), "guild_role", "Função inválida")
	v.check(model.ValidOption(model.TimeSlots, in.AvailabilityTime), "availability_time", "Horário inválido")

	v.check(in.Level >= 0 && in.Level <= MaxLevel, "level", "Level inválido")
	v.check(in.CombatPower >= 0, "combat_power", "Poder de combate inválido")
	v.check(in.Age >= 0 && in.Age <= MaxAge, "age", "Idade inválida")

	for field, u := range map[string]string{
		"streaming_link":  in.StreamingLink,
		"character_image": in.CharacterImage,
		"build_image":     in.BuildImage,
	} {
		v.check(u == "" || util.IsHTTPURL(u), field, "URL inválida")
	}
	return v.err()
}

// keepKnown returns the values of list that appear in allowed, without
// duplicates and in the order of allowed.
func keepKnown(list, allowed []string) []string {
	out := []string{}
	for _, a := range allowed {
		if slices.Contains(list, a) {
			out = append(out, a)
		}
	}
	return out
}

func playerFields(p *model.Player) store.PlayerFields {
	return store.PlayerFields{
		Nickname:         p.Nickname,
		PlayerID:         p.PlayerID,
		Platform:         p.Platform,
		PrimaryWeapon:    p.PrimaryWeapon,
		SecondaryWeapon:  p.SecondaryWeapon,
		BuildType:        p.BuildType,
		Level:            int64(p.Level),
		CombatPower:      int64(p.CombatPower),
		Professions:      model.StringListToJSON(p.Professions),
		GuildRole:        p.GuildRole,
		AvailabilityDays: model.StringListToJSON(p.AvailabilityDays),
		AvailabilityTime: p.AvailabilityTime,
		ContentInterest:  model.StringListToJSON(p.ContentInterest),
		HasMicrophone:    p.HasMicrophone,
		DiscordRequired:  p.DiscordRequired,
		Age:              int64(p.Age),
		DiscordID:        p.DiscordID,
		GamePlatformID:   p.GamePlatformID,
		StreamingLink:    p.StreamingLink,
		CharacterImage:   p.CharacterImage,
		BuildImage:       p.BuildImage,
		GuildMotivation:  p.GuildMotivation,
		Bio:              p.Bio,
		GamerPersonality: model.StringListToJSON(p.GamerPersonality),
	}
}

func playerFromRow(r store.Player) model.Player {
	return model.Player{
		ID:               r.ID,
		Nickname:         r.Nickname,
		PlayerID:         r.PlayerID,
		Platform:         r.Platform,
		PrimaryWeapon:    r.PrimaryWeapon,
		SecondaryWeapon:  r.SecondaryWeapon,
		BuildType:        r.BuildType,
		Level:            int(r.Level),
		CombatPower:      int(r.CombatPower),
		Professions:      model.ParseStringList(r.Professions),
		GuildRole:        r.GuildRole,
		AvailabilityDays: model.ParseStringList(r.AvailabilityDays),
		AvailabilityTime: r.AvailabilityTime,
		ContentInterest:  model.ParseStringList(r.ContentInterest),
		HasMicrophone:    r.HasMicrophone,
		DiscordRequired:  r.DiscordRequired,
		Age:              int(r.Age),
		DiscordID:        r.DiscordID,
		GamePlatformID:   r.GamePlatformID,
		StreamingLink:    r.StreamingLink,
		CharacterImage:   r.CharacterImage,
		BuildImage:       r.BuildImage,
		GuildMotivation:  r.GuildMotivation,
		Bio:              r.Bio,
		GamerPersonality: model.ParseStringList(r.GamerPersonality),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// Register stores a new player. The returned player carries the id the
// player needs to edit the registration later.
func (s *PlayerService) Register(ctx context.Context, in model.Player) (*model.Player, error) {
	if err := normalizePlayer(&in); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	row, err := s.queries.CreatePlayer(ctx, store.CreatePlayerParams{
		ID:           uuid.NewString(),
		PlayerFields: playerFields(&in),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("registering player: %w", err)
	}
	p := playerFromRow(row)
	if s.events != nil {
		s.events.DispatchEvent(ctx, webhook.EventPlayerRegistered, webhook.PlayerEventData{
			ID:            p.ID,
			Nickname:      p.Nickname,
			PrimaryWeapon: p.PrimaryWeapon,
			BuildType:     p.BuildType,
		})
	}
	return &p, nil
}

// Get returns a player by id.
func (s *PlayerService) Get(ctx context.Context, id string) (*model.Player, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("loading player: %w", ErrNotFound)
	}
	row, err := s.queries.GetPlayer(ctx, id)
	if err != nil {
		return nil, notFound(err, "loading player")
	}
	p := playerFromRow(row)
	return &p, nil
}

// Update replaces the registration of player id.
func (s *PlayerService) Update(ctx context.Context, id string, in model.Player) (*model.Player, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("updating player: %w", ErrNotFound)
	}
	if err := normalizePlayer(&in); err != nil {
		return nil, err
	}
	row, err := s.queries.UpdatePlayer(ctx, store.UpdatePlayerParams{
		PlayerFields: playerFields(&in),
		UpdatedAt:    s.now().UTC(),
		ID:           id,
	})
	if err != nil {
		return nil, notFound(err, "updating player")
	}
	p := playerFromRow(row)
	return &p, nil
}

// Delete removes a player and records delete_player.
func (s *PlayerService) Delete(ctx context.Context, adminID int64, id string) error {
	return inTx(ctx, s.db, func(q *store.Queries) error {
		row, err := q.GetPlayer(ctx, id)
		if err != nil {
			return notFound(err, "loading player")
		}
		if err := q.DeletePlayer(ctx, id); err != nil {
			return notFound(err, "deleting player")
		}
		return s.audit.log(ctx, q, AuditRecord{
			AdminID:    adminID,
			Category:   model.AuditCategoryPlayer,
			Action:     model.ActionDeletePlayer,
			TargetType: model.TargetPlayer,
			TargetID:   id,
			Details: map[string]string{
				"nickname":  row.Nickname,
				"timestamp": s.now().UTC().Format(time.RFC3339),
			},
		})
	})
}

// List returns the players matching f, newest first.
func (s *PlayerService) List(ctx context.Context, f PlayerFilter) ([]model.Player, error) {
	rows, err := s.queries.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	out := make([]model.Player, 0, len(rows))
	for _, r := range rows {
		p := playerFromRow(r)
		if f.Match(&p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Count returns the number of registered players.
func (s *PlayerService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountPlayers(ctx)
}

// PlayerFilter selects players. Zero fields match everything.
type PlayerFilter struct {
	// Search matches nickname or discord id, ignoring case and accents.
	Search string
	// Weapon matches the primary or the secondary weapon.
	Weapon string
	// BuildType matches the build type exactly.
	BuildType string
	// AdminSearch matches nickname, discord id, primary weapon or build type.
	AdminSearch string
}

// IsZero reports whether the filter matches every player.
func (f PlayerFilter) IsZero() bool {
	return f == PlayerFilter{}
}

// Match reports whether p passes every set predicate.
func (f PlayerFilter) Match(p *model.Player) bool {
	if q := strings.TrimSpace(f.Search); q != "" {
		if !util.ContainsFold(p.Nickname, q) && !util.ContainsFold(p.DiscordID, q) {
			return false
		}
	}
	if f.Weapon != "" && p.PrimaryWeapon != f.Weapon && p.SecondaryWeapon != f.Weapon {
		return false
	}
	if f.BuildType != "" && p.BuildType != f.BuildType {
		return false
	}
	if q := strings.TrimSpace(f.AdminSearch); q != "" {
		if !util.ContainsFold(p.Nickname, q) &&
			!util.ContainsFold(p.DiscordID, q) &&
			!util.ContainsFold(p.PrimaryWeapon, q) &&
			!util.ContainsFold(p.BuildType, q) {
			return false
		}
	}
	return true
}
