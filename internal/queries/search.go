package queries

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/untoldecay/easyowl/internal/types"
)

// SearchResult is an entity whose label or synonym matched a query.
type SearchResult struct {
	ID     string  `json:"id" yaml:"id"`
	Label  string  `json:"label" yaml:"label"`
	Term   string  `json:"term" yaml:"term"`
	Score  float64 `json:"score" yaml:"score"`
	Reason string  `json:"reason" yaml:"reason"` // e.g. "label", "synonym:hasExactSynonym"
}

type SearchOptions struct {
	Query      string
	Limit      int
	LabelsOnly bool // If true, synonyms are not searched
	Strict     bool // If true, no fuzzy subsequence matching
}

// Match quality; lower is better.
const (
	scoreExact     = 0
	scorePrefix    = 1
	scoreSubstring = 2
	scoreFuzzy     = 10 // plus the fuzzy edit distance
)

// Search ranks entities by how well their label or synonyms match
// opts.Query. Each entity is reported once with its best term. Results are
// ordered by score, then ID.
func Search(entities map[string]*types.Entity, opts SearchOptions) []SearchResult {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil
	}
	q := fold.String(query)

	var results []SearchResult
	for id, e := range entities {
		best := SearchResult{Score: -1}
		consider := func(term, reason string) {
			score, ok := scoreTerm(q, query, term, opts.Strict)
			if !ok {
				return
			}
			if best.Score < 0 || score < best.Score {
				best = SearchResult{ID: id, Label: e.Label(), Term: term, Score: score, Reason: reason}
			}
		}

		if label := e.Label(); label != "" {
			consider(label, "label")
		}
		if !opts.LabelsOnly {
			for _, kind := range types.SynonymKinds {
				for _, syn := range e.Synonyms[kind] {
					consider(syn, "synonym:"+string(kind))
				}
			}
		}
		if best.Score >= 0 {
			results = append(results, best)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score < results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

func scoreTerm(folded, raw, term string, strict bool) (float64, bool) {
	ft := fold.String(term)
	switch {
	case ft == folded:
		return scoreExact, true
	case strings.HasPrefix(ft, folded):
		return scorePrefix, true
	case strings.Contains(ft, folded):
		return scoreSubstring, true
	}
	if strict {
		return 0, false
	}
	if d := fuzzy.RankMatchFold(raw, term); d >= 0 {
		return float64(scoreFuzzy + d), true
	}
	return 0, false
}
