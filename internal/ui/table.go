package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/untoldecay/easyowl/internal/queries"
	"github.com/untoldecay/easyowl/internal/similarity"
	"github.com/untoldecay/easyowl/internal/types"
)

// Table Styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Align(lipgloss.Center)

	TableWarningStyle = lipgloss.NewStyle().
				Foreground(ColorWarn)

	TableSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorPass)

	TableHintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)

// NewTable creates a table with the default border styling.
func NewTable(width int) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Width(width)
}

func cellStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return TableHeaderStyle
	}
	return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)
}

// RenderList renders items as a numbered one-column table. Empty lists
// render as a muted placeholder.
func RenderList(title string, items []string, width int) string {
	if len(items) == 0 {
		return TableHintStyle.Render(title + ": none")
	}

	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{fmt.Sprintf("%d. %s", i+1, item)})
	}

	return NewTable(width).
		Headers(title).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Width(width - 2)
			}
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)
		}).
		String()
}

// RenderSimilarTable renders similarity matches with a score column.
func RenderSimilarTable(term string, matches []similarity.Match, width int) string {
	if len(matches) == 0 {
		return TableHintStyle.Render(fmt.Sprintf("No terms similar to %q.", term))
	}

	rows := make([][]string, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			m.Name,
			fmt.Sprintf("%.4f", m.Score),
			strings.Join(m.IDs, "\n"),
		})
	}

	return NewTable(width).
		Headers("#", fmt.Sprintf("Similar to %q", term), "Score", "Entities").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cellStyle(row, col)
			if row != table.HeaderRow && col == 2 {
				s = s.Align(lipgloss.Right)
				if row < len(matches) && matches[row].Score >= 0.999 {
					s = s.Foreground(ColorPass)
				}
			}
			return s
		}).
		String()
}

// RenderSearchTable renders entity search results.
func RenderSearchTable(query string, results []queries.SearchResult, width int) string {
	if len(results) == 0 {
		return TableHintStyle.Render(fmt.Sprintf("No entities match %q.", query))
	}

	rows := make([][]string, 0, len(results))
	for i, r := range results {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), r.ID, r.Term, r.Reason})
	}

	return NewTable(width).
		Headers("#", "Entity", "Matched", "Via").
		Rows(rows...).
		StyleFunc(cellStyle).
		String()
}

// RenderRelationsTable renders object-property relations.
func RenderRelationsTable(relations []types.Relation, width int) string {
	if len(relations) == 0 {
		return TableHintStyle.Render("Relations: none")
	}

	rows := make([][]string, 0, len(relations))
	for _, r := range relations {
		rows = append(rows, []string{r.Predicate, dash(r.Domain), dash(r.Range), r.Properties["label"]})
	}

	return NewTable(width).
		Headers("Predicate", "Domain", "Range", "Label").
		Rows(rows...).
		StyleFunc(cellStyle).
		String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
