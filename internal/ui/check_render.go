package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
)

// CheckResult aggregates what `owl check` learned about a file.
type CheckResult struct {
	Path       string
	Entities   int
	Relations  int
	Terms      int
	Edges      int
	Roots      int
	Dangling   int
	Namespaces []string
	SKOS       bool
	LoadTime   string
	Warnings   []string
	Err        error
}

// RenderCheckReport renders a CheckResult as a checklist.
func RenderCheckReport(res CheckResult) string {
	if res.Err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			RenderFail(Emoji("✗", "x")+" "+res.Path),
			"  "+res.Err.Error(),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPass).
		Render(fmt.Sprintf("%s %s parsed in %s", Emoji("✓", "ok"), res.Path, res.LoadTime))

	tick := func(_ list.Items, _ int) string { return RenderPass(Emoji("✓", "-")) }
	l := list.New().
		Enumerator(tick).
		EnumeratorStyle(lipgloss.NewStyle().MarginRight(1))

	l.Item(fmt.Sprintf("%d entities, %d relations", res.Entities, res.Relations))
	l.Item(fmt.Sprintf("%d subclass edges, %d roots", res.Edges, res.Roots))
	l.Item(fmt.Sprintf("%d searchable terms", res.Terms))
	l.Item("namespaces: " + strings.Join(res.Namespaces, ", "))
	if res.SKOS {
		l.Item("SKOS matches enabled")
	} else {
		l.Item(RenderMuted("no skos namespace; matches skipped"))
	}

	sections := []string{header, "", l.String()}
	if res.Dangling > 0 {
		sections = append(sections, "", RenderWarn(fmt.Sprintf("%s %d dangling superclass reference(s)", Emoji("⚠️ ", "!"), res.Dangling)))
	}
	if len(res.Warnings) > 0 {
		warn := list.New().
			Enumerator(func(_ list.Items, _ int) string { return RenderWarn("!") }).
			EnumeratorStyle(lipgloss.NewStyle().MarginRight(1))
		for _, w := range res.Warnings {
			warn.Item(w)
		}
		sections = append(sections, "", RenderWarn(fmt.Sprintf("%d warning(s):", len(res.Warnings))), warn.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
