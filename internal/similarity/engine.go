// Package similarity provides fuzzy label matching over an ontology's term
// index using TF-IDF vectors and cosine similarity.
//
// The similarity matrix is not computed until the first query (or Warm)
// and is built exactly once per Engine, so an Engine may be shared between
// goroutines.
package similarity

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/untoldecay/easyowl/internal/debug"
	"github.com/untoldecay/easyowl/internal/types"
)

// Match is one similarity result.
type Match struct {
	Name  string   `json:"name" yaml:"name"`
	IDs   []string `json:"ids" yaml:"ids"`
	Score float64  `json:"score" yaml:"score"`
}

// Engine answers nearest-label queries.
type Engine struct {
	terms *TermIndex

	once   sync.Once
	built  atomic.Bool
	matrix *Matrix
}

// New creates an Engine over terms. The matrix is built lazily.
func New(terms *TermIndex) *Engine {
	return &Engine{terms: terms}
}

// NewFromEntities is shorthand for New(BuildTermIndex(entities)).
func NewFromEntities(entities map[string]*types.Entity) *Engine {
	return New(BuildTermIndex(entities))
}

// Terms exposes the underlying term index.
func (e *Engine) Terms() *TermIndex {
	return e.terms
}

// HasTerm reports whether term is registered. It never builds the matrix.
func (e *Engine) HasTerm(term string) bool {
	return e.terms.Has(term)
}

// Built reports whether the similarity matrix has been computed.
func (e *Engine) Built() bool {
	return e.built.Load()
}

// Warm builds the similarity matrix now instead of on first query.
func (e *Engine) Warm() {
	e.ensure()
}

func (e *Engine) ensure() *Matrix {
	e.once.Do(func() {
		e.matrix = e.compute()
		e.built.Store(true)
	})
	return e.matrix
}

func (e *Engine) compute() *Matrix {
	start := time.Now()
	m := buildMatrix(e.terms.terms)
	debug.Logf("built similarity matrix: %d terms, %d non-zero cells in %v",
		m.Len(), m.NonZero(), time.Since(start))
	return m
}

type searchOptions struct {
	topN         int
	hasTopN      bool
	threshold    float64
	hasThreshold bool
	excludeSelf  bool
}

// Option configures a FindSimilar call.
type Option func(*searchOptions)

// WithTopN keeps only the n highest-scoring results.
func WithTopN(n int) Option {
	return func(o *searchOptions) {
		o.topN = n
		o.hasTopN = true
	}
}

// WithThreshold keeps only results scoring strictly above threshold.
// Threshold filtering always happens before top-N selection.
func WithThreshold(threshold float64) Option {
	return func(o *searchOptions) {
		o.threshold = threshold
		o.hasThreshold = true
	}
}

// WithoutSelf drops the query term's own entry from the results.
func WithoutSelf() Option {
	return func(o *searchOptions) {
		o.excludeSelf = true
	}
}

// FindSimilar ranks registered labels by cosine similarity to term, which
// must itself be registered. Results are ordered by descending score; ties
// keep index order.
func (e *Engine) FindSimilar(term string, opts ...Option) ([]Match, error) {
	row, ok := e.terms.IndexOf(term)
	if !ok {
		return nil, &types.TermNotFoundError{Term: term}
	}

	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}

	cells := e.ensure().Row(row)
	selected := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if o.hasThreshold && !(c.Score > o.threshold) {
			continue
		}
		if o.excludeSelf && c.Col == row {
			continue
		}
		selected = append(selected, c)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Score > selected[j].Score
	})
	if o.hasTopN {
		n := o.topN
		if n < 0 {
			n = 0
		}
		if n < len(selected) {
			selected = selected[:n]
		}
	}

	matches := make([]Match, 0, len(selected))
	for _, c := range selected {
		name := e.terms.Term(c.Col)
		matches = append(matches, Match{
			Name:  name,
			IDs:   e.terms.IDs(name),
			Score: c.Score,
		})
	}
	return matches, nil
}
