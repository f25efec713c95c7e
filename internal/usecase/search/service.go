package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kankodori/spotfinder/internal/domain"
	"github.com/kankodori/spotfinder/internal/logger"
)

// NullSentinel is the literal callers send for "no text" / "no image".
// Distinct from an empty string, which is a real (if useless) query.
const NullSentinel = "null"

// Service is the multi-modal fusion and ranking engine. It holds only
// read-only collaborators; every search builds its result from scratch.
type Service struct {
	catalog   CatalogReader
	vectors   VectorSource
	textEnc   domain.TextEncoder
	imageEnc  domain.ImageEncoder
	extractor domain.KeywordExtractor
	generator domain.ImageGenerator
	limit     int
}

// New creates a search service.
func New(
	catalog CatalogReader,
	vectors VectorSource,
	textEnc domain.TextEncoder,
	imageEnc domain.ImageEncoder,
	extractor domain.KeywordExtractor,
) *Service {
	return &Service{
		catalog:   catalog,
		vectors:   vectors,
		textEnc:   textEnc,
		imageEnc:  imageEnc,
		extractor: extractor,
	}
}

// WithGenerator sets the image generator used when no query image is supplied.
func (s *Service) WithGenerator(g domain.ImageGenerator) *Service {
	s.generator = g
	return s
}

// WithLimit caps the assembled result list. 0 means unlimited.
func (s *Service) WithLimit(n int) *Service {
	s.limit = n
	return s
}

// Search runs one multi-modal search. weight selects the mode: 0 is
// text-only, 100 is image-only, anything between fuses both rankings under
// imageWeight = weight/100. Out-of-range weights are clamped, not rejected.
// Modality-level failures (missing store, encoder error, zero query vector)
// degrade that modality to an empty ranking; only catalog failure is
// returned to the caller.
func (s *Service) Search(ctx context.Context, weight int, queryText, queryImageRef string) ([]domain.ScoredSpot, error) {
	log := logger.FromContext(ctx)

	if weight < 0 || weight > 100 {
		clamped := min(100, max(0, weight))
		log.Warn("weight out of range, clamped",
			zap.Int("weight", weight), zap.Int("clamped", clamped))
		weight = clamped
	}

	var (
		results []domain.ScoredSpot
		err     error
	)
	switch weight {
	case 0:
		results, err = s.searchText(ctx, queryText)
	case 100:
		results, err = s.searchImage(ctx, queryText, queryImageRef)
	default:
		results, err = s.searchFused(ctx, weight, queryText, queryImageRef)
	}
	if err != nil {
		return nil, err
	}

	if s.limit > 0 && len(results) > s.limit {
		results = results[:s.limit]
	}
	return results, nil
}

// searchText is the text-only pipeline: keyword prefilter, text ranking,
// assembly.
func (s *Service) searchText(ctx context.Context, queryText string) ([]domain.ScoredSpot, error) {
	hits, err := s.rankText(ctx, queryText)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, hits, attachSingle)
}

// searchImage is the image-only pipeline: full-map image ranking, assembly.
// Images carry no location signal, so there is no keyword prefilter.
func (s *Service) searchImage(ctx context.Context, queryText, queryImageRef string) ([]domain.ScoredSpot, error) {
	hits, err := s.rankImage(ctx, queryText, queryImageRef)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, hits, attachSingle)
}

// searchFused runs both pipelines (independent, so concurrently), fuses the
// rankings over the union of ids, and assembles. A dead image pipeline
// degrades the request to text-only rather than failing it.
func (s *Service) searchFused(ctx context.Context, weight int, queryText, queryImageRef string) ([]domain.ScoredSpot, error) {
	var textHits, imageHits []domain.RankedHit

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		textHits, err = s.rankText(gctx, queryText)
		return err
	})
	g.Go(func() error {
		var err error
		imageHits, err = s.rankImage(gctx, queryText, queryImageRef)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(imageHits) == 0 {
		logger.FromContext(ctx).Info("image ranking empty, degrading to text-only")
		return s.assemble(ctx, textHits, attachSingle)
	}

	imageWeight := float64(weight) / 100.0
	fused, textScores, imageScores := fuseWeighted(textHits, imageHits, imageWeight)

	return s.assemble(ctx, fused, func(spot *domain.ScoredSpot, hit domain.RankedHit) {
		combined := hit.Score
		text := textScores[hit.ID]
		image := imageScores[hit.ID]
		spot.CombinedSimilarity = &combined
		spot.TextSimilarity = &text
		spot.ImageSimilarity = &image
	})
}

// rankText produces the text-modality ranking. Returns an error only for
// catalog failure; everything else degrades to an empty ranking.
func (s *Service) rankText(ctx context.Context, queryText string) ([]domain.RankedHit, error) {
	log := logger.FromContext(ctx)

	if queryText == NullSentinel {
		log.Info("text modality skipped: no query text")
		return nil, nil
	}

	candidates, locations, err := s.filterByLocation(ctx, queryText)
	if err != nil {
		return nil, err
	}

	vectors, err := s.vectors.All(ctx, domain.ModalityText)
	if err != nil {
		log.Warn("text embedding store unavailable", zap.Error(err))
		return nil, nil
	}

	enc, err := s.textEnc.EncodeText(ctx, queryText)
	if err != nil {
		log.Warn("text encode failed", zap.Error(err))
		return nil, nil
	}

	var restrict map[string]struct{}
	if len(candidates) > 0 {
		restrict = make(map[string]struct{}, len(candidates))
		for _, c := range candidates {
			restrict[c.ID] = struct{}{}
		}
		log.Info("location prefilter applied",
			zap.Int("candidates", len(candidates)),
			zap.Strings("locations", locations))
	}

	hits, err := rank(enc.Vector, vectors, restrict)
	if err != nil {
		if errors.Is(err, domain.ErrNoSignal) {
			log.Warn("text query produced a zero vector")
			return nil, nil
		}
		return nil, fmt.Errorf("rank text: %w", err)
	}
	return hits, nil
}

// rankImage produces the image-modality ranking over the full image map.
// When the caller supplied no image, the generator (if any) synthesizes one
// from the query text first.
func (s *Service) rankImage(ctx context.Context, queryText, queryImageRef string) ([]domain.RankedHit, error) {
	log := logger.FromContext(ctx)

	path := queryImageRef
	if path == NullSentinel {
		if s.generator == nil || queryText == NullSentinel || queryText == "" {
			log.Info("image modality skipped: no image and no prompt")
			return nil, nil
		}
		generated, err := s.generator.Generate(ctx, queryText)
		if err != nil {
			log.Warn("image generation failed", zap.Error(err))
			return nil, nil
		}
		log.Info("query image generated", zap.String("path", generated))
		path = generated
	}

	vectors, err := s.vectors.All(ctx, domain.ModalityImage)
	if err != nil {
		log.Warn("image embedding store unavailable", zap.Error(err))
		return nil, nil
	}

	enc, err := s.imageEnc.EncodeImage(ctx, path)
	if err != nil {
		log.Warn("image encode failed", zap.Error(err))
		return nil, nil
	}

	hits, err := rank(enc.Vector, vectors, nil)
	if err != nil {
		if errors.Is(err, domain.ErrNoSignal) {
			log.Warn("query image produced a zero vector")
			return nil, nil
		}
		return nil, fmt.Errorf("rank image: %w", err)
	}
	return hits, nil
}
