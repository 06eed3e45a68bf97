package report

import (
	"strconv"
	"travel-matrix-service/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	minimumStyle = numberStyle.Foreground(lipgloss.Color("#50FA7B")).Bold(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

// FormatValue renders a duration or distance with two decimals.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderTable draws the result table for a terminal, highlighting every
// cell that holds its column's smallest value.
func RenderTable(t domain.ResultTable) string {
	mask := t.MinimumMask()

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, 2+len(r.Values))
		row = append(row, r.Company, r.Address)
		for _, v := range r.Values {
			row = append(row, FormatValue(v))
		}
		rows = append(rows, row)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(t.Headers()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < 2:
				return cellStyle
			case row >= 0 && row < len(mask) && mask[row][col-2]:
				return minimumStyle
			default:
				return numberStyle
			}
		})

	return tbl.Render()
}
