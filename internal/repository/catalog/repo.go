package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kankodori/spotfinder/internal/domain"
)

// Repo is a JSON-file-backed spot catalog with an in-memory snapshot.
// Reads serve the cached snapshot; Invalidate is the single write path and
// swaps the snapshot atomically so in-flight searches never observe a
// half-updated catalog.
type Repo struct {
	path string

	mu       sync.RWMutex
	snapshot []domain.Spot // nil until first load
	byID     map[string]int
	loaded   bool
}

// New creates a catalog repository over the given JSON file.
// The file is read lazily on first access.
func New(path string) *Repo {
	return &Repo{path: path}
}

// All returns the full record list in storage order. The returned slice is
// a copy; callers may not reach the cached snapshot.
func (r *Repo) All(ctx context.Context) ([]domain.Spot, error) {
	snap, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Spot, len(snap))
	copy(out, snap)
	return out, nil
}

// ByID returns the record with the given id, or domain.ErrSpotNotFound.
func (r *Repo) ByID(ctx context.Context, id string) (domain.Spot, error) {
	snap, index, err := r.load(ctx)
	if err != nil {
		return domain.Spot{}, err
	}
	i, ok := index[id]
	if !ok {
		return domain.Spot{}, fmt.Errorf("%w: %s", domain.ErrSpotNotFound, id)
	}
	return snap[i], nil
}

// ByLocationKeyword returns records whose location contains any keyword as
// a case-sensitive substring. No match yields an empty slice, not an error.
func (r *Repo) ByLocationKeyword(ctx context.Context, keywords []string) ([]domain.Spot, error) {
	snap, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Spot, 0)
	for _, spot := range snap {
		if spot.Location == "" {
			continue
		}
		for _, kw := range keywords {
			if kw != "" && strings.Contains(spot.Location, kw) {
				matched = append(matched, spot)
				break
			}
		}
	}
	return matched, nil
}

// Invalidate drops the cached snapshot. The next read reloads the file.
// Called by the ingestion path after appending a record.
func (r *Repo) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = nil
	r.byID = nil
	r.loaded = false
}

// load returns the cached snapshot, reading the file on first use.
func (r *Repo) load(ctx context.Context) ([]domain.Spot, map[string]int, error) {
	r.mu.RLock()
	if r.loaded {
		snap, index := r.snapshot, r.byID
		r.mu.RUnlock()
		return snap, index, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return r.snapshot, r.byID, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	spots, err := readFile(r.path)
	if err != nil {
		return nil, nil, err
	}

	index := make(map[string]int, len(spots))
	for i, spot := range spots {
		index[spot.ID] = i
	}

	r.snapshot = spots
	r.byID = index
	r.loaded = true
	return r.snapshot, r.byID, nil
}
