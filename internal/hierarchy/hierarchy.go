// Package hierarchy indexes rdfs:subClassOf edges and answers bounded
// ancestor and descendant queries.
//
// Traversal is breadth-first over an explicit worklist with a per-call
// visited set, so cycles terminate and call-stack depth is independent of
// ontology depth. Dangling references (superclasses with no entity) are
// ordinary nodes.
package hierarchy

import (
	"sort"

	"github.com/untoldecay/easyowl/internal/types"
)

// Index holds forward (class -> superclasses) and reverse
// (class -> subclasses) adjacency. It is immutable after construction.
type Index struct {
	forward  map[string]map[string]struct{}
	reverse  map[string]map[string]struct{}
	maxDepth int
}

// Option configures an Index.
type Option func(*Index)

// WithMaxTraversalDepth overrides the hard traversal ceiling.
// Values below 1 are ignored.
func WithMaxTraversalDepth(depth int) Option {
	return func(ix *Index) {
		if depth > 0 {
			ix.maxDepth = depth
		}
	}
}

// New builds an Index from every named subclass reference of entities.
// Restrictions never become edges.
func New(entities map[string]*types.Entity, opts ...Option) *Index {
	forward := make(map[string]map[string]struct{})
	for id, e := range entities {
		for _, ref := range e.Subclasses {
			if !ref.IsNamed() {
				continue
			}
			if forward[id] == nil {
				forward[id] = make(map[string]struct{})
			}
			forward[id][ref.URI] = struct{}{}
		}
	}
	return FromEdges(forward, opts...)
}

// FromEdges builds an Index from a ready-made forward map. The map is
// copied, so later changes by the caller are not observed.
func FromEdges(forward map[string]map[string]struct{}, opts ...Option) *Index {
	ix := &Index{
		forward:  make(map[string]map[string]struct{}, len(forward)),
		reverse:  make(map[string]map[string]struct{}),
		maxDepth: types.MaxTraversalDepth,
	}
	for _, opt := range opts {
		opt(ix)
	}

	for id, supers := range forward {
		if len(supers) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(supers))
		for s := range supers {
			set[s] = struct{}{}
			if ix.reverse[s] == nil {
				ix.reverse[s] = make(map[string]struct{})
			}
			ix.reverse[s][id] = struct{}{}
		}
		ix.forward[id] = set
	}
	return ix
}

// Ancestors returns every superclass reachable from id within maxDepth
// edges, excluding id itself. maxDepth -1 means unlimited, bounded by the
// traversal ceiling. The result is sorted.
func (ix *Index) Ancestors(id string, maxDepth int) []string {
	return ix.walk(ix.forward, id, maxDepth)
}

// Descendants is the mirror of Ancestors over subclass edges.
func (ix *Index) Descendants(id string, maxDepth int) []string {
	return ix.walk(ix.reverse, id, maxDepth)
}

// Parents returns the direct superclasses of id.
func (ix *Index) Parents(id string) []string {
	return ix.Ancestors(id, 1)
}

// Children returns the direct subclasses of id.
func (ix *Index) Children(id string) []string {
	return ix.Descendants(id, 1)
}

// HasEntity reports whether id takes part in at least one subclass edge,
// as either end. Entities without hierarchy relations are not reported.
func (ix *Index) HasEntity(id string) bool {
	if _, ok := ix.forward[id]; ok {
		return true
	}
	_, ok := ix.reverse[id]
	return ok
}

// EdgeCount returns the number of distinct subclass edges.
func (ix *Index) EdgeCount() int {
	n := 0
	for _, supers := range ix.forward {
		n += len(supers)
	}
	return n
}

// Roots returns nodes with subclasses but no superclasses, sorted.
func (ix *Index) Roots() []string {
	var roots []string
	for id := range ix.reverse {
		if _, ok := ix.forward[id]; !ok {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// MaxTraversalDepth returns the configured ceiling.
func (ix *Index) MaxTraversalDepth() int {
	return ix.maxDepth
}

type frontier struct {
	id    string
	depth int
}

func (ix *Index) walk(edges map[string]map[string]struct{}, id string, maxDepth int) []string {
	limit := maxDepth
	if limit == types.UnlimitedDepth || limit > ix.maxDepth {
		limit = ix.maxDepth
	}
	if limit <= 0 {
		return []string{}
	}

	visited := map[string]bool{id: true}
	found := []string{}
	queue := []frontier{{id: id, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= limit {
			continue
		}
		for next := range edges[cur.id] {
			if visited[next] {
				continue
			}
			visited[next] = true
			found = append(found, next)
			queue = append(queue, frontier{id: next, depth: cur.depth + 1})
		}
	}

	sort.Strings(found)
	return found
}
