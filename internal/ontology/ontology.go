// Package ontology is the query facade over an extracted OWL document. It
// runs the extractor once, builds the hierarchy index and the similarity
// engine from its output, and answers every query against those.
//
// An Ontology is immutable after Load apart from the lazily built
// similarity matrix, which is guarded internally, so it is safe for
// concurrent readers.
package ontology

import (
	"sort"
	"time"

	"github.com/untoldecay/easyowl/internal/debug"
	"github.com/untoldecay/easyowl/internal/extractor"
	"github.com/untoldecay/easyowl/internal/hierarchy"
	"github.com/untoldecay/easyowl/internal/queries"
	"github.com/untoldecay/easyowl/internal/similarity"
	"github.com/untoldecay/easyowl/internal/types"
	"github.com/untoldecay/easyowl/internal/validation"
)

// Ontology answers hierarchy, relation and label-similarity queries.
type Ontology struct {
	path       string
	entities   map[string]*types.Entity
	relations  []types.Relation
	namespaces types.Namespaces
	loadTime   time.Duration

	hierarchy  *hierarchy.Index
	similarity *similarity.Engine
	suggest    queries.SuggestOptions
}

type options struct {
	extractor extractor.Extractor
	maxDepth  int
	eager     bool
	suggest   queries.SuggestOptions
}

// Option configures Load and New.
type Option func(*options)

// WithMaxTraversalDepth overrides the hierarchy traversal ceiling.
func WithMaxTraversalDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithEagerSimilarity builds the similarity matrix during construction
// instead of on the first similarity query.
func WithEagerSimilarity() Option {
	return func(o *options) { o.eager = true }
}

// WithSuggestions controls the "did you mean" list attached to
// TermNotFoundError. A limit of 0 disables suggestions.
func WithSuggestions(limit, maxDistance int) Option {
	return func(o *options) {
		o.suggest = queries.SuggestOptions{Limit: limit, MaxDistance: maxDistance}
	}
}

// WithExtractor replaces the default OWL extractor.
func WithExtractor(e extractor.Extractor) Option {
	return func(o *options) { o.extractor = e }
}

func defaults() options {
	return options{
		extractor: extractor.NewOWLExtractor(),
		maxDepth:  types.MaxTraversalDepth,
		suggest:   queries.SuggestOptions{Limit: 5, MaxDistance: 3},
	}
}

// Load extracts path and builds an Ontology. Any extraction failure is
// returned as a *types.ParseError and no Ontology is produced.
func Load(path string, opts ...Option) (*Ontology, error) {
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}

	res, err := o.extractor.Extract(path)
	if err != nil {
		return nil, err
	}
	ont := build(res, o)
	ont.path = path
	return ont, nil
}

// New builds an Ontology from an existing extraction result.
func New(res *extractor.ExtractionResult, opts ...Option) *Ontology {
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	return build(res, o)
}

func build(res *extractor.ExtractionResult, o options) *Ontology {
	entities := res.Entities
	if entities == nil {
		entities = map[string]*types.Entity{}
	}
	ont := &Ontology{
		entities:   entities,
		relations:  res.Relations,
		namespaces: res.Namespaces,
		loadTime:   res.Duration,
		hierarchy:  hierarchy.New(entities, hierarchy.WithMaxTraversalDepth(o.maxDepth)),
		similarity: similarity.NewFromEntities(entities),
		suggest:    o.suggest,
	}
	if o.eager {
		ont.similarity.Warm()
	}
	debug.Logf("ontology ready: %d entities, %d edges, %d terms",
		len(entities), ont.hierarchy.EdgeCount(), ont.similarity.Terms().Len())
	return ont
}

func (o *Ontology) requireEntity(id string) error {
	if _, ok := o.entities[id]; !ok {
		return &types.EntityNotFoundError{ID: id}
	}
	return nil
}

// Ancestors returns the superclasses of id up to maxDepth edges away
// (types.UnlimitedDepth for all). id must be an extracted entity.
func (o *Ontology) Ancestors(id string, maxDepth int) ([]string, error) {
	if err := o.requireEntity(id); err != nil {
		return nil, err
	}
	return o.hierarchy.Ancestors(id, maxDepth), nil
}

// Descendants returns the subclasses of id up to maxDepth edges away.
func (o *Ontology) Descendants(id string, maxDepth int) ([]string, error) {
	if err := o.requireEntity(id); err != nil {
		return nil, err
	}
	return o.hierarchy.Descendants(id, maxDepth), nil
}

// EntityRelations is the direct neighbourhood of an entity.
type EntityRelations struct {
	Ancestors   []string         `json:"ancestors" yaml:"ancestors"`
	Descendants []string         `json:"descendants" yaml:"descendants"`
	Relations   []types.Relation `json:"relations" yaml:"relations"`
}

// EntityRelations returns the direct parents and children of id, and every
// relation whose domain, range or a property value is id.
func (o *Ontology) EntityRelations(id string) (*EntityRelations, error) {
	if err := o.requireEntity(id); err != nil {
		return nil, err
	}
	rel := &EntityRelations{
		Ancestors:   o.hierarchy.Parents(id),
		Descendants: o.hierarchy.Children(id),
		Relations:   []types.Relation{},
	}
	for _, r := range o.relations {
		if r.Involves(id) {
			rel.Relations = append(rel.Relations, r)
		}
	}
	return rel, nil
}

// FindSimilarTerms ranks registered labels by similarity to term. An
// unknown term yields a *types.TermNotFoundError carrying suggestions.
func (o *Ontology) FindSimilarTerms(term string, opts ...similarity.Option) ([]similarity.Match, error) {
	matches, err := o.similarity.FindSimilar(term, opts...)
	if tnf, ok := err.(*types.TermNotFoundError); ok && o.suggest.Limit > 0 {
		tnf.Suggestions = queries.SuggestTerms(term, o.similarity.Terms().Terms(), o.suggest)
	}
	return matches, err
}

// Suggest proposes registered labels close to term.
func (o *Ontology) Suggest(term string) []string {
	return queries.SuggestTerms(term, o.similarity.Terms().Terms(), o.suggest)
}

// HasEntity reports whether id is an extracted entity. This is stricter
// than the hierarchy's own notion, which only knows classes with edges.
func (o *Ontology) HasEntity(id string) bool {
	_, ok := o.entities[id]
	return ok
}

// HasTerm reports whether term is a registered label or exact synonym.
func (o *Ontology) HasTerm(term string) bool {
	return o.similarity.HasTerm(term)
}

// TermIDs returns the entities carrying term.
func (o *Ontology) TermIDs(term string) []string {
	return o.similarity.Terms().IDs(term)
}

// Entity returns the entity with the given id.
func (o *Ontology) Entity(id string) (*types.Entity, error) {
	e, ok := o.entities[id]
	if !ok {
		return nil, &types.EntityNotFoundError{ID: id}
	}
	return e, nil
}

// Entities returns a copy of the entity map. Entities themselves are
// shared and must not be modified.
func (o *Ontology) Entities() map[string]*types.Entity {
	out := make(map[string]*types.Entity, len(o.entities))
	for k, v := range o.entities {
		out[k] = v
	}
	return out
}

// EntityIDs returns every entity id, sorted.
func (o *Ontology) EntityIDs() []string {
	ids := make([]string, 0, len(o.entities))
	for id := range o.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Relations returns every extracted relation in document order.
func (o *Ontology) Relations() []types.Relation {
	out := make([]types.Relation, len(o.relations))
	copy(out, o.relations)
	return out
}

// Namespaces returns a copy of the declared prefix table.
func (o *Ontology) Namespaces() types.Namespaces {
	out := make(types.Namespaces, len(o.namespaces))
	for k, v := range o.namespaces {
		out[k] = v
	}
	return out
}

// Path returns the file the ontology was loaded from, or "" for New.
func (o *Ontology) Path() string {
	return o.path
}

// Graph expands the hierarchy around id as a tree of paths.
func (o *Ontology) Graph(id string, dir queries.Direction, maxDepth int) (*queries.EntityGraph, error) {
	if err := o.requireEntity(id); err != nil {
		return nil, err
	}
	return queries.GetEntityGraph(o.hierarchy, o.entities, id, dir, maxDepth), nil
}

// Search finds entities by label or synonym text.
func (o *Ontology) Search(opts queries.SearchOptions) []queries.SearchResult {
	return queries.Search(o.entities, opts)
}

// Warm builds the similarity matrix if it has not been built yet.
func (o *Ontology) Warm() {
	o.similarity.Warm()
}

// Lint reports modelling problems that extraction tolerates: unlabelled
// entities, dangling or cyclic subclass references and disjointness with
// an ancestor.
func (o *Ontology) Lint() []validation.Finding {
	known := func(id string) bool {
		_, ok := o.entities[id]
		return ok
	}
	ancestors := func(id string) []string {
		return o.hierarchy.Ancestors(id, types.UnlimitedDepth)
	}
	return validation.Lint(o.entities, validation.DefaultRules(known, ancestors))
}

// Stats summarises an Ontology.
type Stats struct {
	Entities        int           `json:"entities" yaml:"entities"`
	Relations       int           `json:"relations" yaml:"relations"`
	Terms           int           `json:"terms" yaml:"terms"`
	Edges           int           `json:"edges" yaml:"edges"`
	Roots           int           `json:"roots" yaml:"roots"`
	Dangling        int           `json:"dangling" yaml:"dangling"`
	Namespaces      []string      `json:"namespaces" yaml:"namespaces"`
	SKOS            bool          `json:"skos" yaml:"skos"`
	LoadTime        time.Duration `json:"load_time" yaml:"load_time"`
	SimilarityBuilt bool          `json:"similarity_built" yaml:"similarity_built"`
}

// Stats reports counts over the ontology. Dangling counts distinct
// superclass references with no extracted entity.
func (o *Ontology) Stats() Stats {
	dangling := map[string]bool{}
	for _, e := range o.entities {
		for _, super := range e.Superclasses() {
			if _, ok := o.entities[super]; !ok {
				dangling[super] = true
			}
		}
	}
	return Stats{
		Entities:        len(o.entities),
		Relations:       len(o.relations),
		Terms:           o.similarity.Terms().Len(),
		Edges:           o.hierarchy.EdgeCount(),
		Roots:           len(o.hierarchy.Roots()),
		Dangling:        len(dangling),
		Namespaces:      o.namespaces.Prefixes(),
		SKOS:            o.namespaces.Has("skos"),
		LoadTime:        o.loadTime,
		SimilarityBuilt: o.similarity.Built(),
	}
}
