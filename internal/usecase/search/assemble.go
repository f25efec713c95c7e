package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kankodori/spotfinder/internal/domain"
	"github.com/kankodori/spotfinder/internal/logger"
)

// attachFunc copies the scores of a hit onto the outgoing record.
type attachFunc func(*domain.ScoredSpot, domain.RankedHit)

// attachSingle sets similarity_score for single-modality searches.
func attachSingle(spot *domain.ScoredSpot, hit domain.RankedHit) {
	score := hit.Score
	spot.SimilarityScore = &score
}

// assemble resolves ranked hits back onto catalog records in hit order.
// A display name appears at most once: multiple photo ids can share one
// place name, and the first (highest-ranked) occurrence wins. Hits whose
// id has no catalog record are dropped with a data-consistency warning.
// Scores are attached to a copy; the catalog's canonical record is never
// mutated.
func (s *Service) assemble(ctx context.Context, hits []domain.RankedHit, attach attachFunc) ([]domain.ScoredSpot, error) {
	log := logger.FromContext(ctx)

	out := make([]domain.ScoredSpot, 0, len(hits))
	seenNames := make(map[string]struct{}, len(hits))

	for _, hit := range hits {
		spot, err := s.catalog.ByID(ctx, hit.ID)
		if err != nil {
			if errors.Is(err, domain.ErrSpotNotFound) {
				log.Warn("ranked id has no catalog record", zap.String("id", hit.ID))
				continue
			}
			return nil, fmt.Errorf("resolve spot %s: %w", hit.ID, err)
		}

		if _, dup := seenNames[spot.Name]; dup {
			continue
		}
		seenNames[spot.Name] = struct{}{}

		scored := domain.ScoredSpot{Spot: spot}
		attach(&scored, hit)
		out = append(out, scored)
	}

	return out, nil
}
