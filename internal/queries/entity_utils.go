package queries

import (
	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// FindClosestTerm uses Levenshtein distance to find the closest candidate to
// query, ignoring case. Returns the candidate and its distance, or "" and -1
// when nothing lies within maxDistance. Ties keep the earlier candidate.
func FindClosestTerm(query string, candidates []string, maxDistance int) (string, int) {
	if query == "" || len(candidates) == 0 || maxDistance < 0 {
		return "", -1
	}

	q := fold.String(query)
	closest := ""
	minDistance := maxDistance + 1

	for _, candidate := range candidates {
		dist := levenshtein.ComputeDistance(q, fold.String(candidate))
		if dist < minDistance {
			minDistance = dist
			closest = candidate
		}
	}

	if minDistance <= maxDistance {
		return closest, minDistance
	}
	return "", -1
}
