package queries

import (
	"strings"

	"github.com/untoldecay/easyowl/internal/hierarchy"
	"github.com/untoldecay/easyowl/internal/types"
)

// Direction selects which side of the hierarchy a graph expands.
type Direction int

const (
	Up   Direction = iota // towards superclasses
	Down                  // towards subclasses
)

func (d Direction) String() string {
	if d == Up {
		return "ancestors"
	}
	return "descendants"
}

// maxGraphNodes caps rendered graphs. Dense diamonds can otherwise expand
// exponentially when every path is listed.
const maxGraphNodes = 10000

// EntityNode is one node of a rendered hierarchy graph, in pre-order.
type EntityNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label,omitempty"`
	Depth int      `json:"depth"`
	Path  []string `json:"path"`
}

// PathString joins the node's path for display.
func (n EntityNode) PathString() string {
	return strings.Join(n.Path, " → ")
}

// EntityGraph is the tree of every path from Root up or down the hierarchy.
type EntityGraph struct {
	Root      string       `json:"root"`
	Direction string       `json:"direction"`
	Nodes     []EntityNode `json:"nodes"`
	Truncated bool         `json:"truncated,omitempty"`
}

// GetEntityGraph expands root depth edges in direction. Unlike the flat
// Ancestors/Descendants sets, a node reachable along several paths appears
// once per path; a node already on the current path is not revisited, so
// cycles terminate. depth -1 means the index's traversal ceiling.
func GetEntityGraph(ix *hierarchy.Index, entities map[string]*types.Entity, root string, dir Direction, depth int) *EntityGraph {
	limit := depth
	if limit == types.UnlimitedDepth || limit > ix.MaxTraversalDepth() {
		limit = ix.MaxTraversalDepth()
	}

	graph := &EntityGraph{Root: root, Direction: dir.String()}
	next := ix.Children
	if dir == Up {
		next = ix.Parents
	}

	if limit < 0 {
		return graph
	}

	// Pre-order walk over an explicit stack. Children are pushed in
	// reverse so they pop in index order.
	stack := [][]string{{root}}
	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(graph.Nodes) >= maxGraphNodes {
			graph.Truncated = true
			break
		}
		id := path[len(path)-1]
		graph.Nodes = append(graph.Nodes, EntityNode{
			ID:    id,
			Label: labelOf(entities, id),
			Depth: len(path) - 1,
			Path:  path,
		})
		if len(path)-1 >= limit {
			continue
		}
		children := next(id)
		for i := len(children) - 1; i >= 0; i-- {
			n := children[i]
			if contains(path, n) {
				continue
			}
			child := make([]string, len(path)+1)
			copy(child, path)
			child[len(path)] = n
			stack = append(stack, child)
		}
	}
	return graph
}

func labelOf(entities map[string]*types.Entity, id string) string {
	if e, ok := entities[id]; ok {
		return e.Label()
	}
	return ""
}

func contains(path []string, id string) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}
