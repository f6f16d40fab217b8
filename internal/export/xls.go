// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/olegiv/ngl-guild/internal/model"
)

// Excel opens an HTML table saved with the .xls extension.
var xlsTemplate = template.Must(template.New("xls").Parse(`<html><head><meta charset="utf-8"></head><body>
<table border="1" style="border-collapse: collapse;">
<thead><tr>{{range .Columns}}<th style="padding: 8px; background-color: #f0f0f0;">{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td style="padding: 8px;">{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body></html>
`))

// WriteXLS writes players as a spreadsheet table.
func WriteXLS(w io.Writer, players []model.Player) error {
	rows := make([][]string, len(players))
	for i := range players {
		rows[i] = Row(&players[i])
	}
	if err := xlsTemplate.Execute(w, struct {
		Columns []string
		Rows    [][]string
	}{Columns, rows}); err != nil {
		return fmt.Errorf("writing xls: %w", err)
	}
	return nil
}
