package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableSpec describes one rendered table. Rows shorter than Headers are
// padded with empty cells. Footer text goes in the first column.
type tableSpec struct {
	Headers  []string
	Rows     [][]string
	Footer   string
	Colorize bool
}

func renderTable(spec tableSpec) string {
	columns := len(spec.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	style := table.StyleRounded
	if spec.Colorize {
		style.Color.Header = text.Colors{text.Bold, text.FgCyan}
	}
	tw.SetStyle(style)

	tw.AppendHeader(toRow(spec.Headers, columns))
	for _, row := range spec.Rows {
		tw.AppendRow(toRow(row, columns))
	}
	if spec.Footer != "" {
		footer := make(table.Row, columns)
		footer[0] = spec.Footer
		tw.AppendFooter(footer)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			AlignHeader: text.AlignLeft,
			AlignFooter: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func toRow(cells []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := range columns {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
