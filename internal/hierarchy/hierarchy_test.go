package hierarchy

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/untoldecay/easyowl/internal/types"
)

func entity(id string, supers ...string) *types.Entity {
	e := &types.Entity{ID: id}
	for _, s := range supers {
		e.Subclasses = append(e.Subclasses, types.SubclassRef{URI: s})
	}
	return e
}

func build(entities ...*types.Entity) map[string]*types.Entity {
	m := make(map[string]*types.Entity, len(entities))
	for _, e := range entities {
		m[e.ID] = e
	}
	return m
}

func TestSimpleChain(t *testing.T) {
	ix := New(build(entity("A", "B"), entity("B")))

	if got := ix.Ancestors("A", types.UnlimitedDepth); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("Ancestors(A) = %v, want [B]", got)
	}
	if got := ix.Descendants("B", types.UnlimitedDepth); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("Descendants(B) = %v, want [A]", got)
	}
	if got := ix.Ancestors("B", types.UnlimitedDepth); len(got) != 0 {
		t.Errorf("Ancestors(B) = %v, want []", got)
	}
}

func TestDepthBounds(t *testing.T) {
	// D -> C -> B -> A
	ix := New(build(entity("D", "C"), entity("C", "B"), entity("B", "A"), entity("A")))

	tests := []struct {
		depth int
		want  []string
	}{
		{0, []string{}},
		{1, []string{"C"}},
		{2, []string{"B", "C"}},
		{3, []string{"A", "B", "C"}},
		{10, []string{"A", "B", "C"}},
		{types.UnlimitedDepth, []string{"A", "B", "C"}},
		{-7, []string{}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("depth=%d", tt.depth), func(t *testing.T) {
			if got := ix.Ancestors("D", tt.depth); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Ancestors(D, %d) = %v, want %v", tt.depth, got, tt.want)
			}
		})
	}

	if got := ix.Descendants("A", 2); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("Descendants(A, 2) = %v", got)
	}
}

func TestCycleTerminates(t *testing.T) {
	ix := New(build(entity("A", "B"), entity("B", "A")))

	if got := ix.Ancestors("A", types.UnlimitedDepth); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("Ancestors(A) in cycle = %v, want [B]", got)
	}
	if got := ix.Descendants("A", types.UnlimitedDepth); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("Descendants(A) in cycle = %v, want [B]", got)
	}

	self := New(build(entity("S", "S")))
	if got := self.Ancestors("S", types.UnlimitedDepth); len(got) != 0 {
		t.Errorf("self loop should not report the entity itself, got %v", got)
	}
}

func TestDiamondDeduplicates(t *testing.T) {
	// D -> B, D -> C, B -> A, C -> A
	ix := New(build(entity("D", "B", "C"), entity("B", "A"), entity("C", "A"), entity("A")))

	if got := ix.Ancestors("D", types.UnlimitedDepth); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Ancestors(D) = %v", got)
	}
	if got := ix.Descendants("A", types.UnlimitedDepth); !reflect.DeepEqual(got, []string{"B", "C", "D"}) {
		t.Errorf("Descendants(A) = %v", got)
	}
}

func TestShortestPathWinsDepthBudget(t *testing.T) {
	// X reaches Z directly and through a long chain; depth 1 must still see Z.
	ix := New(build(entity("X", "Y1", "Z"), entity("Y1", "Y2"), entity("Y2", "Z"), entity("Z", "Top")))

	if got := ix.Ancestors("X", 2); !reflect.DeepEqual(got, []string{"Top", "Y1", "Y2", "Z"}) {
		t.Errorf("Ancestors(X, 2) = %v", got)
	}
}

func TestTraversalCeiling(t *testing.T) {
	const chain = 50
	entities := make(map[string]*types.Entity)
	for i := 0; i < chain; i++ {
		entities[fmt.Sprint(i)] = entity(fmt.Sprint(i), fmt.Sprint(i+1))
	}

	ix := New(entities, WithMaxTraversalDepth(10))
	if got := len(ix.Ancestors("0", types.UnlimitedDepth)); got != 10 {
		t.Errorf("unlimited walk with ceiling 10 returned %d ancestors", got)
	}
	if got := len(ix.Ancestors("0", 25)); got != 10 {
		t.Errorf("explicit depth above ceiling returned %d ancestors", got)
	}

	deep := New(entities)
	if got := len(deep.Ancestors("0", types.UnlimitedDepth)); got != chain {
		t.Errorf("default ceiling returned %d ancestors, want %d", got, chain)
	}
	if deep.MaxTraversalDepth() != types.MaxTraversalDepth {
		t.Errorf("default ceiling = %d", deep.MaxTraversalDepth())
	}
}

func TestRestrictionsAreNotEdges(t *testing.T) {
	e := &types.Entity{ID: "A", Subclasses: []types.SubclassRef{
		{Restrictions: []types.Restriction{{OnProperty: "p", SomeValuesFrom: "B"}}},
	}}
	ix := New(build(e))
	if ix.HasEntity("A") || ix.HasEntity("B") {
		t.Error("restriction targets must not become hierarchy nodes")
	}
	if ix.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", ix.EdgeCount())
	}
}

func TestHasEntity(t *testing.T) {
	ix := New(build(entity("A", "Missing"), entity("Lonely")))

	tests := []struct {
		id   string
		want bool
	}{
		{"A", true},
		{"Missing", true}, // dangling superclass is still a node
		{"Lonely", false}, // entity exists but has no hierarchy relations
		{"Unknown", false},
	}
	for _, tt := range tests {
		if got := ix.HasEntity(tt.id); got != tt.want {
			t.Errorf("HasEntity(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestRootsAndDirectNeighbours(t *testing.T) {
	ix := New(build(entity("B", "A"), entity("C", "A"), entity("A")))

	if got := ix.Roots(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("Roots() = %v", got)
	}
	if got := ix.Children("A"); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("Children(A) = %v", got)
	}
	if got := ix.Parents("B"); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("Parents(B) = %v", got)
	}
}

func TestDirectEdgesAreSymmetric(t *testing.T) {
	ix := New(build(entity("D", "B", "C"), entity("B", "A"), entity("C", "A"), entity("E", "D")))

	for _, a := range []string{"A", "B", "C", "D", "E"} {
		for _, b := range ix.Ancestors(a, 1) {
			found := false
			for _, d := range ix.Descendants(b, 1) {
				if d == a {
					found = true
				}
			}
			if !found {
				t.Errorf("%s is a direct ancestor of %s but %s is not a direct descendant of %s", b, a, a, b)
			}
		}
	}
}

func TestFromEdgesCopiesInput(t *testing.T) {
	forward := map[string]map[string]struct{}{"A": {"B": {}}}
	ix := FromEdges(forward)
	forward["A"]["C"] = struct{}{}

	if got := ix.Ancestors("A", 1); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("index observed caller mutation: %v", got)
	}
}
