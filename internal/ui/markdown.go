package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/untoldecay/easyowl/internal/types"
)

// EntityMarkdown describes an entity and its direct neighbourhood as
// markdown. Properties are listed in tag order.
func EntityMarkdown(e *types.Entity, parents, children []string) string {
	var b strings.Builder

	title := e.Label()
	if title == "" {
		title = e.ID
	}
	fmt.Fprintf(&b, "# %s\n\n`%s`\n\n", title, e.ID)

	if len(e.Properties) > 0 {
		b.WriteString("## Properties\n\n| Tag | Value |\n|---|---|\n")
		tags := make([]string, 0, len(e.Properties))
		for tag := range e.Properties {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			v, _ := e.Property(tag)
			fmt.Fprintf(&b, "| %s | %s |\n", tag, escapeCell(v.String()))
		}
		b.WriteString("\n")
	}

	for _, kind := range types.SynonymKinds {
		if syns := e.Synonyms[kind]; len(syns) > 0 {
			bullets(&b, "Synonyms ("+string(kind)+")", syns)
		}
	}
	bullets(&b, "Superclasses", parents)
	bullets(&b, "Subclasses", children)

	var restrictions []string
	for _, s := range e.Subclasses {
		for _, r := range s.Restrictions {
			restrictions = append(restrictions, fmt.Sprintf("%s some %s", orAny(r.OnProperty), orAny(r.SomeValuesFrom)))
		}
	}
	bullets(&b, "Restrictions", restrictions)
	bullets(&b, "Disjoint with", e.Disjoints)

	for _, kind := range types.MatchKinds {
		if m := e.Matches[kind]; len(m) > 0 {
			bullets(&b, "SKOS "+string(kind), m)
		}
	}
	return b.String()
}

func bullets(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func orAny(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown renders md for the terminal. Without colour support the
// "notty" style is used so output stays plain.
func RenderMarkdown(md string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if ShouldUseColor() {
		opts = append(opts, glamour.WithAutoStyle(), glamour.WithColorProfile(ColorProfile()))
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render(md)
}
