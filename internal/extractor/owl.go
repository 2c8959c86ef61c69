package extractor

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/untoldecay/easyowl/internal/debug"
	"github.com/untoldecay/easyowl/internal/types"
)

// OWLExtractor reads owl:Class and owl:ObjectProperty definitions from
// OWL/RDF-XML documents.
type OWLExtractor struct{}

func NewOWLExtractor() *OWLExtractor {
	return &OWLExtractor{}
}

func (o *OWLExtractor) Name() string {
	return "owl"
}

// Extract validates path and parses the document it names. Any failure is
// returned as a *types.ParseError and no partial result is produced.
func (o *OWLExtractor) Extract(path string) (*ExtractionResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.ParseError{Path: path, Reason: "ontology file not found"}
		}
		return nil, &types.ParseError{Path: path, Reason: "cannot access ontology file", Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &types.ParseError{Path: path, Reason: "path is not a file"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.ParseError{Path: path, Reason: "cannot read ontology file", Err: err}
	}
	return o.ExtractBytes(path, data)
}

// ExtractBytes parses an in-memory document. source names the document in errors.
func (o *OWLExtractor) ExtractBytes(source string, data []byte) (*ExtractionResult, error) {
	start := time.Now()

	if err := checkWellFormed(data); err != nil {
		return nil, &types.ParseError{Path: source, Reason: "invalid XML in ontology file", Err: err}
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &types.ParseError{Path: source, Reason: "invalid XML in ontology file", Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &types.ParseError{Path: source, Reason: "ontology file has no root element"}
	}

	namespaces := declaredNamespaces(root)
	if !namespaces.Has("rdf") {
		return nil, &types.ParseError{Path: source, Reason: "missing required 'rdf' namespace in ontology"}
	}

	p := newParser(namespaces)
	entities := p.entities(root)
	relations := p.relations(root)

	debug.Logf("extracted %d entities and %d relations from %s in %v",
		len(entities), len(relations), source, time.Since(start))

	return &ExtractionResult{
		Entities:   entities,
		Relations:  relations,
		Namespaces: namespaces,
		Duration:   time.Since(start),
		Extractor:  o.Name(),
	}, nil
}

// checkWellFormed runs a strict token pass over data. etree's reader
// tolerates content after the root element; this rejects it, along with
// unclosed or mismatched tags and documents without a root.
func checkWellFormed(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if roots > 0 {
					line, _ := dec.InputPos()
					return fmt.Errorf("line %d: content after the root element", line)
				}
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return errors.New("text outside the root element")
			}
		}
	}
	if roots == 0 {
		return errors.New("no root element")
	}
	return nil
}

// declaredNamespaces reads the prefixed xmlns declarations on the root element.
// The default namespace has no prefix and is skipped.
func declaredNamespaces(root *etree.Element) types.Namespaces {
	ns := make(types.Namespaces)
	for _, a := range root.Attr {
		if a.Space == "xmlns" && a.Value != "" {
			ns[a.Key] = a.Value
		}
	}
	return ns
}

// parser resolves vocabulary URIs once per document.
type parser struct {
	ns   types.Namespaces
	rdf  string
	rdfs string
	owl  string
	obo  string
	skos string
}

func newParser(ns types.Namespaces) *parser {
	// Undeclared vocabulary prefixes fall back to their standard URIs so
	// elements in a default namespace still resolve.
	uri := func(prefix string) string {
		if v, ok := ns[prefix]; ok {
			return v
		}
		return types.DefaultNamespaces[prefix]
	}
	return &parser{
		ns:   ns,
		rdf:  ns["rdf"],
		rdfs: uri("rdfs"),
		owl:  uri("owl"),
		obo:  uri("oboInOwl"),
		skos: ns["skos"],
	}
}

func (p *parser) is(el *etree.Element, space, local string) bool {
	return el.Tag == local && el.NamespaceURI() == space
}

func (p *parser) children(el *etree.Element, space, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if p.is(c, space, local) {
			out = append(out, c)
		}
	}
	return out
}

func (p *parser) child(el *etree.Element, space, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if p.is(c, space, local) {
			return c
		}
	}
	return nil
}

// attr returns the value of the namespaced attribute space:key, or "".
func (p *parser) attr(el *etree.Element, space, key string) string {
	if el == nil {
		return ""
	}
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key == key && a.Space != "" && a.NamespaceURI() == space {
			return a.Value
		}
	}
	return ""
}

func (p *parser) resource(el *etree.Element) string {
	return p.attr(el, p.rdf, "resource")
}

func (p *parser) entities(root *etree.Element) map[string]*types.Entity {
	entities := make(map[string]*types.Entity)
	for _, el := range p.children(root, p.owl, "Class") {
		id := p.attr(el, p.rdf, "about")
		if id == "" {
			continue
		}
		entities[id] = p.entity(id, el)
	}
	return entities
}

func (p *parser) entity(id string, el *etree.Element) *types.Entity {
	e := &types.Entity{
		ID:         id,
		Properties: p.properties(el),
		Subclasses: []types.SubclassRef{},
		Disjoints:  []string{},
		Synonyms:   p.synonyms(el),
		Matches:    p.matches(el),
	}

	for _, sub := range p.children(el, p.rdfs, "subClassOf") {
		if ref := p.resource(sub); ref != "" {
			e.Subclasses = append(e.Subclasses, types.SubclassRef{URI: ref})
			continue
		}
		if restrictions := p.expression(sub); len(restrictions) > 0 {
			e.Subclasses = append(e.Subclasses, types.SubclassRef{Restrictions: restrictions})
		}
	}

	seen := make(map[string]bool)
	for _, d := range p.children(el, p.owl, "disjointWith") {
		ref := p.resource(d)
		if ref != "" && !seen[ref] {
			e.Disjoints = append(e.Disjoints, ref)
			seen[ref] = true
		}
	}
	return e
}

// properties accumulates text and rdf:resource values of every direct child
// in a declared namespace, keyed by local tag name.
func (p *parser) properties(el *etree.Element) map[string]types.PropertyValue {
	acc := make(map[string][]string)
	for _, c := range el.ChildElements() {
		if !p.ns.Declares(c.NamespaceURI()) {
			continue
		}
		values, ok := acc[c.Tag]
		if !ok {
			values = []string{}
		}
		if text := strings.TrimSpace(c.Text()); text != "" {
			values = append(values, text)
		}
		if ref := p.resource(c); ref != "" {
			values = append(values, ref)
		}
		acc[c.Tag] = values
	}

	props := make(map[string]types.PropertyValue, len(acc))
	for tag, values := range acc {
		props[tag] = types.PropertyValue{Values: values}
	}
	return props
}

func (p *parser) synonyms(el *etree.Element) map[types.SynonymKind][]string {
	synonyms := make(map[types.SynonymKind][]string, len(types.SynonymKinds))
	for _, kind := range types.SynonymKinds {
		labels := []string{}
		for _, s := range p.children(el, p.obo, string(kind)) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				labels = append(labels, text)
			}
		}
		synonyms[kind] = labels
	}
	return synonyms
}

// matches is empty unless the document declares the skos prefix.
func (p *parser) matches(el *etree.Element) map[types.MatchKind][]string {
	matches := make(map[types.MatchKind][]string)
	if p.skos == "" {
		return matches
	}
	for _, kind := range types.MatchKinds {
		refs := []string{}
		for _, m := range p.children(el, p.skos, string(kind)) {
			ref := p.resource(m)
			if ref == "" {
				ref = p.attr(m, p.skos, "resource")
			}
			if ref != "" {
				refs = append(refs, ref)
			}
		}
		matches[kind] = refs
	}
	return matches
}

func (p *parser) relations(root *etree.Element) []types.Relation {
	relations := []types.Relation{}
	for _, el := range p.children(root, p.owl, "ObjectProperty") {
		predicate := p.attr(el, p.rdf, "about")
		if predicate == "" {
			continue
		}

		props := make(map[string]string)
		for _, c := range el.ChildElements() {
			if text := strings.TrimSpace(c.Text()); text != "" {
				props[c.Tag] = text
			}
		}

		relations = append(relations, types.Relation{
			Predicate:  predicate,
			Domain:     p.resource(p.child(el, p.rdfs, "domain")),
			Range:      p.resource(p.child(el, p.rdfs, "range")),
			Properties: props,
		})
	}
	return relations
}
