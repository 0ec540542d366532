// Package static renders the plain tables and detail blocks printed by
// gt list, gt info, gt services and gt apps.
package static

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	labelStyle  = lipgloss.NewStyle().Bold(true).PaddingRight(2)
)

// borderless strips every border so columns are separated by padding only.
func borderless(t *table.Table) *table.Table {
	return t.
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false)
}

// RenderTable renders rows under bold headers with aligned columns.
// It returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := borderless(table.New().Headers(headers...).Rows(rows...)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String() + "\n"
}

// RenderDetails renders label/value pairs as an aligned two-column block.
// Pairs with an empty value are left out.
func RenderDetails(pairs [][2]string) string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		if p[1] != "" {
			rows = append(rows, []string{p[0] + ":", p[1]})
		}
	}
	if len(rows) == 0 {
		return ""
	}

	t := borderless(table.New().Rows(rows...)).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return labelStyle
			}
			return lipgloss.NewStyle()
		})
	return t.String() + "\n"
}
