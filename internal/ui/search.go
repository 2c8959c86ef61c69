package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	suggestBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1).
			Margin(1, 0)

	suggestContextStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), true, false, false, false).
				BorderForeground(ColorMuted)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(ColorPass).
			Bold(true)
)

// SuggestionViewModel holds data for the "did you mean" box shown when a
// label or entity is unknown.
type SuggestionViewModel struct {
	Query       string
	Kind        string // "term" or "entity"
	Suggestions []string
}

// RenderSuggestionBox renders the not-found box with suggestions.
func RenderSuggestionBox(vm SuggestionViewModel) string {
	header := RenderAccent(fmt.Sprintf("%s Unknown %s: %q", Emoji("🔍", "?"), vm.Kind, vm.Query))

	var lines []string
	switch len(vm.Suggestions) {
	case 0:
		lines = append(lines, "No similar labels found.")
	case 1:
		lines = append(lines, fmt.Sprintf("Did you mean: %s", suggestionStyle.Render(vm.Suggestions[0])))
	default:
		lines = append(lines, "Did you mean one of:")
		for _, s := range vm.Suggestions {
			lines = append(lines, "  • "+suggestionStyle.Render(s))
		}
	}

	return suggestBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		suggestContextStyle.Render(strings.Join(lines, "\n")),
	))
}
