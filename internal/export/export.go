// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package export writes the player roster as a spreadsheet or a PDF.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/ngl-guild/internal/model"
)

// Content types of the exports.
const (
	ContentTypeXLS = "application/vnd.ms-excel; charset=utf-8"
	ContentTypePDF = "application/pdf"
)

// Filename returns the download name of an export made at t, e.g.
// "jogadores_2026-03-01.xls".
func Filename(t time.Time, ext string) string {
	return "jogadores_" + t.UTC().Format("2006-01-02") + "." + ext
}

// dateBR formats t the way the roster shows dates.
func dateBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// intOrEmpty leaves unset numbers blank.
func intOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func join(list []string) string {
	return strings.Join(list, ", ")
}

// Columns are the spreadsheet headers, in order.
var Columns = []string{
	"Nickname", "ID do Jogador", "Plataforma",
	"Arma Primária", "Arma Secundária", "Build", "Level", "Poder de Combate",
	"Profissões", "Função na Guilda", "Dias Disponíveis", "Horário",
	"Interesse em Conteúdos", "Microfone", "Discord Obrigatório",
	"Idade", "Discord ID", "Steam/Epic/NetEase ID",
	"Personalidade Gamer", "Motivação para Guilda", "Bio",
	"Data de Registro",
}

// Row returns the spreadsheet cells of p, aligned with Columns.
func Row(p *model.Player) []string {
	return []string{
		p.Nickname,
		p.PlayerID,
		p.Platform,
		p.PrimaryWeapon,
		p.SecondaryWeapon,
		p.BuildType,
		intOrEmpty(p.Level),
		intOrEmpty(p.CombatPower),
		join(p.Professions),
		p.GuildRole,
		join(p.AvailabilityDays),
		p.AvailabilityTime,
		join(p.ContentInterest),
		yesNo(p.HasMicrophone),
		yesNo(p.DiscordRequired),
		intOrEmpty(p.Age),
		p.DiscordID,
		p.GamePlatformID,
		join(p.GamerPersonality),
		p.GuildMotivation,
		p.Bio,
		dateBR(p.CreatedAt),
	}
}
