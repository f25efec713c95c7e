package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/kankodori/spotfinder/internal/domain"
)

// filterByLocation extracts keywords from the query text and narrows the
// catalog to spots whose location matches any of them. An empty candidate
// slice means "no keywords" or "no location matched" — the ranking stage
// widens to the full catalog rather than returning nothing.
func (s *Service) filterByLocation(ctx context.Context, text string) ([]domain.Spot, []string, error) {
	keywords := s.extractor.Extract(text)
	if len(keywords) == 0 {
		return nil, nil, nil
	}

	candidates, err := s.catalog.ByLocationKeyword(ctx, keywords)
	if err != nil {
		return nil, nil, fmt.Errorf("filter by location: %w", err)
	}

	seen := make(map[string]struct{}, len(candidates))
	var locations []string
	for _, spot := range candidates {
		if _, ok := seen[spot.Location]; ok {
			continue
		}
		seen[spot.Location] = struct{}{}
		locations = append(locations, spot.Location)
	}
	sort.Strings(locations)

	return candidates, locations, nil
}
