package validation

import (
	"strings"
	"testing"

	"github.com/untoldecay/easyowl/internal/types"
)

func entity(id, label string, supers ...string) *types.Entity {
	e := &types.Entity{ID: id, Properties: map[string]types.PropertyValue{}}
	if label != "" {
		e.Properties["label"] = types.PropertyValue{Values: []string{label}}
	}
	for _, s := range supers {
		e.Subclasses = append(e.Subclasses, types.SubclassRef{URI: s})
	}
	return e
}

func TestExists(t *testing.T) {
	tests := []struct {
		name    string
		entity  *types.Entity
		wantErr bool
	}{
		{name: "nil entity returns error", entity: nil, wantErr: true},
		{name: "non-nil entity passes", entity: entity("A", "a"), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Exists()("A", tt.entity)
			if (err != nil) != tt.wantErr {
				t.Errorf("Exists() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasLabel(t *testing.T) {
	tests := []struct {
		name    string
		entity  *types.Entity
		wantErr bool
	}{
		{name: "nil entity passes (delegated check)", entity: nil, wantErr: false},
		{name: "labelled passes", entity: entity("A", "alpha"), wantErr: false},
		{name: "unlabelled fails", entity: entity("A", ""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HasLabel()("A", tt.entity)
			if (err != nil) != tt.wantErr {
				t.Errorf("HasLabel() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKnownSuperclasses(t *testing.T) {
	known := func(id string) bool { return id == "A" }

	if err := KnownSuperclasses(known)("B", entity("B", "b", "A")); err != nil {
		t.Errorf("known superclass: unexpected error %v", err)
	}
	err := KnownSuperclasses(known)("B", entity("B", "b", "A", "X", "Y"))
	if err == nil {
		t.Fatal("expected error for undefined superclasses")
	}
	if !strings.Contains(err.Error(), "X, Y") {
		t.Errorf("error %q should list X, Y", err)
	}
}

func TestNotSelfSubclass(t *testing.T) {
	if err := NotSelfSubclass()("A", entity("A", "a", "B")); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := NotSelfSubclass()("A", entity("A", "a", "A")); err == nil {
		t.Error("expected error for self subclass")
	}
}

func TestAcyclic(t *testing.T) {
	// A -> B -> C -> A
	ancestors := map[string][]string{
		"A": {"B", "C"},
		"B": {"A", "C"},
		"C": {"A", "B"},
		"D": {"E"},
	}
	lookup := func(id string) []string { return ancestors[id] }

	tests := []struct {
		name    string
		id      string
		entity  *types.Entity
		wantErr bool
	}{
		{name: "cycle member", id: "A", entity: entity("A", "a", "B"), wantErr: true},
		{name: "acyclic", id: "D", entity: entity("D", "d", "E"), wantErr: false},
		{name: "self reference left to NotSelfSubclass", id: "F", entity: entity("F", "f", "F"), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Acyclic(lookup)(tt.id, tt.entity)
			if (err != nil) != tt.wantErr {
				t.Errorf("Acyclic() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNotDisjointWithAncestor(t *testing.T) {
	lookup := func(id string) []string {
		if id == "B" {
			return []string{"A"}
		}
		return nil
	}

	b := entity("B", "b", "A")
	b.Disjoints = []string{"C"}
	if err := NotDisjointWithAncestor(lookup)("B", b); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	b.Disjoints = []string{"C", "A"}
	if err := NotDisjointWithAncestor(lookup)("B", b); err == nil {
		t.Error("expected error for disjointness with an ancestor")
	}
}

func TestChain(t *testing.T) {
	v := Chain(Exists(), HasLabel())

	if err := v("A", nil); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("nil entity: err = %v, want not found", err)
	}
	if err := v("A", entity("A", "")); err == nil || !strings.Contains(err.Error(), "rdfs:label") {
		t.Errorf("unlabelled: err = %v, want label error", err)
	}
	if err := v("A", entity("A", "a")); err != nil {
		t.Errorf("valid entity: err = %v", err)
	}
}

func TestLint(t *testing.T) {
	entities := map[string]*types.Entity{
		"A": entity("A", "a"),
		"B": entity("B", "", "A", "Missing"),
		"C": entity("C", "c", "C"),
	}
	known := func(id string) bool { _, ok := entities[id]; return ok }
	ancestors := func(id string) []string {
		if id == "B" {
			return []string{"A", "Missing"}
		}
		return nil
	}

	findings := Lint(entities, DefaultRules(known, ancestors))

	var got []string
	for _, f := range findings {
		got = append(got, f.ID+":"+f.Rule)
	}
	want := []string{"B:label", "B:dangling", "C:self-subclass"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("findings = %v, want %v", got, want)
	}
}
