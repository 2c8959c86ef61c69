package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/untoldecay/easyowl/internal/queries"
)

func nodeText(n queries.EntityNode) string {
	if n.Label == "" {
		return n.ID
	}
	return fmt.Sprintf("%s %s", n.Label, RenderMuted("<"+n.ID+">"))
}

// BuildEntityTree constructs a lipgloss/tree for an EntityGraph. Nodes
// arrive in pre-order, so every parent path is registered before its
// children.
func BuildEntityTree(graph *queries.EntityGraph) *tree.Tree {
	if len(graph.Nodes) == 0 {
		return nil
	}

	rootNode := graph.Nodes[0]
	t := tree.New().Root(nodeText(rootNode))
	t.EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorAccent))
	t.RootStyle(lipgloss.NewStyle().Bold(true).Foreground(ColorAccent))

	nodeMap := map[string]*tree.Tree{rootNode.PathString(): t}

	for _, node := range graph.Nodes[1:] {
		if len(node.Path) < 2 {
			continue
		}
		parentPath := strings.Join(node.Path[:len(node.Path)-1], " → ")

		child := tree.New().Root(nodeText(node))
		child.EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorAccent))
		nodeMap[node.PathString()] = child

		if parent, ok := nodeMap[parentPath]; ok {
			parent.Child(child)
		} else {
			t.Child(child)
		}
	}

	return t
}

// RenderEntityTree renders an EntityGraph using lipgloss/tree
func RenderEntityTree(graph *queries.EntityGraph) string {
	t := BuildEntityTree(graph)
	if t == nil {
		return TableHintStyle.Render("No entities found.")
	}
	out := t.String()
	if graph.Truncated {
		out += "\n" + TableWarningStyle.Render("… output truncated")
	}
	return out
}
