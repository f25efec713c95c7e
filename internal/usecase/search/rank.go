package search

import (
	"sort"

	"github.com/kankodori/spotfinder/internal/domain"
)

// rank scores every candidate in vectors against the query by cosine
// similarity and returns the hits in descending score order. When restrict
// is non-nil only ids present in it are considered. Candidates holding the
// all-zero sentinel vector are skipped: their similarity is 0 by definition
// and must never drive a match.
//
// Brute-force linear scan, O(n·d). At catalog sizes of hundreds to low
// thousands of records an index would add complexity without benefit.
func rank(query domain.Vector, vectors map[string]domain.Vector, restrict map[string]struct{}) ([]domain.RankedHit, error) {
	if query.IsZero() {
		return nil, domain.ErrNoSignal
	}

	hits := make([]domain.RankedHit, 0, len(vectors))
	for id, vec := range vectors {
		if restrict != nil {
			if _, ok := restrict[id]; !ok {
				continue
			}
		}
		if vec.IsZero() {
			continue
		}
		hits = append(hits, domain.RankedHit{ID: id, Score: query.Cosine(vec)})
	}

	sortHits(hits)
	return hits, nil
}

// sortHits orders hits by descending score, ascending id on exact ties.
// Map iteration order is never allowed to leak into results.
func sortHits(hits []domain.RankedHit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
}
