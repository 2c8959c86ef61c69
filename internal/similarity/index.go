package similarity

import (
	"sort"

	"github.com/untoldecay/easyowl/internal/types"
)

// TermIndex maps labels to the entities carrying them and fixes a stable
// label <-> row bijection for the similarity matrix.
type TermIndex struct {
	terms []string
	index map[string]int
	ids   map[string][]string
}

// BuildTermIndex registers every entity's primary label and exact synonyms.
// Entities are visited in ID order, labels before synonyms, so index
// assignment is deterministic. Entities without a label contribute only
// their synonyms.
func BuildTermIndex(entities map[string]*types.Entity) *TermIndex {
	ids := make([]string, 0, len(entities))
	for id := range entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ti := &TermIndex{
		index: make(map[string]int),
		ids:   make(map[string][]string),
	}
	for _, id := range ids {
		if label := entities[id].Label(); label != "" {
			ti.add(label, id)
		}
	}
	for _, id := range ids {
		for _, syn := range entities[id].Synonyms[types.SynonymExact] {
			ti.add(syn, id)
		}
	}
	return ti
}

func (ti *TermIndex) add(term, id string) {
	if _, ok := ti.index[term]; !ok {
		ti.index[term] = len(ti.terms)
		ti.terms = append(ti.terms, term)
	}
	for _, existing := range ti.ids[term] {
		if existing == id {
			return
		}
	}
	ti.ids[term] = append(ti.ids[term], id)
	sort.Strings(ti.ids[term])
}

// Len returns the number of distinct labels.
func (ti *TermIndex) Len() int {
	return len(ti.terms)
}

// Has reports whether term is a registered label.
func (ti *TermIndex) Has(term string) bool {
	_, ok := ti.index[term]
	return ok
}

// IndexOf returns the row of term.
func (ti *TermIndex) IndexOf(term string) (int, bool) {
	i, ok := ti.index[term]
	return i, ok
}

// Term returns the label at row i.
func (ti *TermIndex) Term(i int) string {
	return ti.terms[i]
}

// Terms returns all labels in index order.
func (ti *TermIndex) Terms() []string {
	out := make([]string, len(ti.terms))
	copy(out, ti.terms)
	return out
}

// IDs returns the sorted entity IDs sharing term.
func (ti *TermIndex) IDs(term string) []string {
	out := make([]string, len(ti.ids[term]))
	copy(out, ti.ids[term])
	return out
}
