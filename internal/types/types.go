// Package types defines the core data types extracted from OWL/RDF-XML ontologies.
package types

import (
	"encoding/json"
	"sort"
	"strings"
)

const (
	// UnlimitedDepth is the max-depth sentinel meaning "traverse until exhaustion".
	UnlimitedDepth = -1

	// MaxTraversalDepth is the default hard ceiling on hierarchy walks.
	// Branches deeper than this stop expanding silently.
	MaxTraversalDepth = 1000
)

// Well-known namespace URIs
const (
	NamespaceOWL      = "http://www.w3.org/2002/07/owl#"
	NamespaceRDF      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS     = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceXSD      = "http://www.w3.org/2001/XMLSchema#"
	NamespaceOBOInOWL = "http://www.geneontology.org/formats/oboInOwl#"
	NamespaceSKOS     = "http://www.w3.org/2004/02/skos/core#"
)

// DefaultNamespaces lists the prefixes commonly declared by OWL documents.
var DefaultNamespaces = Namespaces{
	"owl":      NamespaceOWL,
	"rdf":      NamespaceRDF,
	"rdfs":     NamespaceRDFS,
	"xsd":      NamespaceXSD,
	"oboInOwl": NamespaceOBOInOWL,
	"skos":     NamespaceSKOS,
}

// Namespaces maps a declared prefix to its URI.
type Namespaces map[string]string

// Has reports whether prefix is declared.
func (n Namespaces) Has(prefix string) bool {
	_, ok := n[prefix]
	return ok
}

// Declares reports whether uri is the value of any declared prefix.
func (n Namespaces) Declares(uri string) bool {
	for _, v := range n {
		if v == uri {
			return true
		}
	}
	return false
}

// Prefixes returns the declared prefixes in sorted order.
func (n Namespaces) Prefixes() []string {
	out := make([]string, 0, len(n))
	for p := range n {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// SynonymKind is an oboInOwl synonym annotation.
type SynonymKind string

const (
	SynonymExact  SynonymKind = "hasExactSynonym"  // Fully interchangeable with the label
	SynonymNarrow SynonymKind = "hasNarrowSynonym" // More specific than the label
	SynonymBroad  SynonymKind = "hasBroadSynonym"  // More general than the label
)

// SynonymKinds lists every synonym kind in extraction order.
var SynonymKinds = []SynonymKind{SynonymExact, SynonymNarrow, SynonymBroad}

// MatchKind is a SKOS mapping relation.
type MatchKind string

const (
	MatchExact  MatchKind = "exactMatch"
	MatchClose  MatchKind = "closeMatch"
	MatchNarrow MatchKind = "narrowMatch"
	MatchBroad  MatchKind = "broadMatch"
)

// MatchKinds lists every SKOS match kind in extraction order.
var MatchKinds = []MatchKind{MatchExact, MatchClose, MatchNarrow, MatchBroad}

// PropertyValue holds the values captured for one annotation tag.
// A value with exactly one entry behaves as a scalar.
type PropertyValue struct {
	Values []string
}

// IsScalar reports whether exactly one value was captured.
func (p PropertyValue) IsScalar() bool {
	return len(p.Values) == 1
}

// String returns the scalar value, or the values joined by "; ".
func (p PropertyValue) String() string {
	return strings.Join(p.Values, "; ")
}

// First returns the first captured value, or "" when there is none.
func (p PropertyValue) First() string {
	if len(p.Values) == 0 {
		return ""
	}
	return p.Values[0]
}

// Contains reports whether v is one of the captured values.
func (p PropertyValue) Contains(v string) bool {
	for _, s := range p.Values {
		if s == v {
			return true
		}
	}
	return false
}

// MarshalJSON encodes a scalar as a string and anything else as an array.
func (p PropertyValue) MarshalJSON() ([]byte, error) {
	if p.IsScalar() {
		return json.Marshal(p.Values[0])
	}
	if p.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Values)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (p *PropertyValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Values = []string{s}
		return nil
	}
	return json.Unmarshal(data, &p.Values)
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (p PropertyValue) MarshalYAML() (interface{}, error) {
	if p.IsScalar() {
		return p.Values[0], nil
	}
	return p.Values, nil
}

// Restriction is an anonymous OWL class expression. Empty fields are absent.
type Restriction struct {
	OnProperty     string `json:"onProperty,omitempty" yaml:"onProperty,omitempty"`
	SomeValuesFrom string `json:"someValuesFrom,omitempty" yaml:"someValuesFrom,omitempty"`
}

// SubclassRef is one rdfs:subClassOf entry: either a named superclass URI
// or the restrictions of an anonymous class expression.
type SubclassRef struct {
	URI          string        `json:"uri,omitempty" yaml:"uri,omitempty"`
	Restrictions []Restriction `json:"restrictions,omitempty" yaml:"restrictions,omitempty"`
}

// IsNamed reports whether the entry is a direct superclass reference.
// Only named references become hierarchy edges.
func (s SubclassRef) IsNamed() bool {
	return s.URI != ""
}

// Entity is an owl:Class keyed by its rdf:about URI.
type Entity struct {
	ID         string                   `json:"id" yaml:"id"`
	Properties map[string]PropertyValue `json:"properties" yaml:"properties"`
	Subclasses []SubclassRef            `json:"subclasses" yaml:"subclasses"`
	Disjoints  []string                 `json:"disjoints" yaml:"disjoints"`
	Synonyms   map[SynonymKind][]string `json:"synonyms" yaml:"synonyms"`
	Matches    map[MatchKind][]string   `json:"matches" yaml:"matches"`
}

// Label returns the primary rdfs:label, or "" when the entity has none.
func (e *Entity) Label() string {
	return e.Properties["label"].First()
}

// Property returns the values captured for tag.
func (e *Entity) Property(tag string) (PropertyValue, bool) {
	v, ok := e.Properties[tag]
	return v, ok
}

// Superclasses returns the named superclass URIs in document order.
func (e *Entity) Superclasses() []string {
	var out []string
	for _, s := range e.Subclasses {
		if s.IsNamed() {
			out = append(out, s.URI)
		}
	}
	return out
}

// IsDisjointWith reports whether other was declared owl:disjointWith this entity.
func (e *Entity) IsDisjointWith(other string) bool {
	for _, d := range e.Disjoints {
		if d == other {
			return true
		}
	}
	return false
}

// Relation is an owl:ObjectProperty definition.
type Relation struct {
	Predicate  string            `json:"predicate" yaml:"predicate"`
	Domain     string            `json:"domain,omitempty" yaml:"domain,omitempty"`
	Range      string            `json:"range,omitempty" yaml:"range,omitempty"`
	Properties map[string]string `json:"properties" yaml:"properties"`
}

// Involves reports whether id is the relation's domain, range, or any property value.
func (r Relation) Involves(id string) bool {
	if r.Domain == id || r.Range == id {
		return true
	}
	for _, v := range r.Properties {
		if v == id {
			return true
		}
	}
	return false
}
