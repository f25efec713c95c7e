package search

import (
	"context"

	"github.com/kankodori/spotfinder/internal/domain"
)

// CatalogReader is the read contract over the spot catalog.
type CatalogReader interface {
	All(ctx context.Context) ([]domain.Spot, error)
	ByID(ctx context.Context, id string) (domain.Spot, error)
	// ByLocationKeyword returns spots whose location contains any of the
	// keywords as a substring. Empty slice, not an error, on no match.
	ByLocationKeyword(ctx context.Context, keywords []string) ([]domain.Spot, error)
}

// VectorSource exposes the precomputed per-modality embedding maps.
type VectorSource interface {
	All(ctx context.Context, modality domain.Modality) (map[string]domain.Vector, error)
}
