// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/olegiv/ngl-guild/internal/model"
)

type pdfColumn struct {
	title string
	width float64
	value func(p *model.Player) string
}

var pdfColumns = []pdfColumn{
	{"Nickname", 45, func(p *model.Player) string { return p.Nickname }},
	{"Armas", 55, func(p *model.Player) string { return strings.Join(p.Weapons(), " / ") }},
	{"Build", 32, func(p *model.Player) string { return p.BuildLabel() }},
	{"Level", 16, func(p *model.Player) string { return intOrEmpty(p.Level) }},
	{"Poder", 22, func(p *model.Player) string { return intOrEmpty(p.CombatPower) }},
	{"Função", 35, func(p *model.Player) string { return p.GuildRoleLabel() }},
	{"Discord", 45, func(p *model.Player) string { return p.DiscordID }},
	{"Registro", 27, func(p *model.Player) string { return dateBR(p.CreatedAt) }},
}

// WritePDF writes a landscape roster of players. generated is printed in
// the header.
func WritePDF(w io.Writer, players []model.Player, generated time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Jogadores", true)
	pdf.SetAutoPageBreak(true, 12)

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(240, 240, 240)
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, 7, tr(c.title), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(140, 10, tr("Jogadores da Guilda"), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("%d jogadores - %s", len(players), dateBR(generated))), "", 1, "R", false, 0, "")
		header()
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(0, 6, tr("Página ")+strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	for i := range players {
		p := &players[i]
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, 6, fit(pdf, tr(c.value(p)), c.width-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// fit shortens s until it fits in width at the current font. s is already
// translated to the single-byte font encoding.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
