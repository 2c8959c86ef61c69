package queries

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SuggestOptions bounds SuggestTerms.
type SuggestOptions struct {
	Limit       int // Maximum suggestions returned (0 means 5)
	MaxDistance int // Maximum Levenshtein distance for typo correction
}

// ResolveTerms returns candidates containing term, case-insensitively.
// Prefix matches come first, then other substring matches, each group
// ordered by length then lexically.
func ResolveTerms(term string, candidates []string, limit int) []string {
	if term == "" || limit <= 0 {
		return nil
	}
	q := fold.String(term)

	var prefix, contains []string
	for _, c := range candidates {
		fc := fold.String(c)
		switch {
		case strings.HasPrefix(fc, q):
			prefix = append(prefix, c)
		case strings.Contains(fc, q):
			contains = append(contains, c)
		}
	}
	byLength(prefix)
	byLength(contains)

	results := append(prefix, contains...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SuggestTerms proposes candidates for a term that matched nothing exactly.
// Direct substring matches win; otherwise the closest candidate within
// MaxDistance; otherwise fuzzy subsequence matches ranked by distance
// (e.g. "crdmy" -> "cardiomyopathy").
func SuggestTerms(term string, candidates []string, opts SuggestOptions) []string {
	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}

	if direct := ResolveTerms(term, candidates, limit); len(direct) > 0 {
		return direct
	}

	if closest, _ := FindClosestTerm(term, candidates, opts.MaxDistance); closest != "" {
		return []string{closest}
	}

	ranks := fuzzy.RankFindFold(term, candidates)
	if len(ranks) == 0 {
		return nil
	}
	sort.Stable(ranks)
	suggestions := make([]string, 0, limit)
	for _, r := range ranks {
		if len(suggestions) == limit {
			break
		}
		suggestions = append(suggestions, r.Target)
	}
	return suggestions
}

func byLength(s []string) {
	sort.Slice(s, func(i, j int) bool {
		if len(s[i]) != len(s[j]) {
			return len(s[i]) < len(s[j])
		}
		return s[i] < s[j]
	})
}
