package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders rows under bold headers with a muted border.
func (t *Theme) Table(headers []string, rows [][]string) string {
	header := t.Title
	cell := lipgloss.NewStyle().Padding(0, 1)
	border := lipgloss.NewStyle()
	if !t.NoColor {
		border = border.Foreground(lipgloss.Color(t.Colors.Border))
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return cell
		})

	for _, row := range rows {
		tbl.Row(row...)
	}

	return tbl.String()
}
