package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/kankodori/spotfinder/internal/domain"
)

// Repo loads and serves the precomputed id->vector maps, one JSON file per
// modality. Each map is read once per process and treated as read-only
// afterwards; the ingestion path owns the write side of the files.
type Repo struct {
	paths map[domain.Modality]string

	mu   sync.Mutex
	maps map[domain.Modality]map[string]domain.Vector
}

// New creates an embedding repository. paths maps each modality to its
// vector file.
func New(paths map[domain.Modality]string) *Repo {
	return &Repo{
		paths: paths,
		maps:  make(map[domain.Modality]map[string]domain.Vector),
	}
}

// All returns the full embedding map for a modality. The map is shared and
// must be treated as read-only by callers. A missing or corrupt file maps
// to domain.ErrStoreUnavailable — the modality has zero usable candidates.
func (r *Repo) All(ctx context.Context, modality domain.Modality) (map[string]domain.Vector, error) {
	return r.load(ctx, modality)
}

// VectorFor returns the stored vector for one id, or false when absent.
func (r *Repo) VectorFor(ctx context.Context, modality domain.Modality, id string) (domain.Vector, bool, error) {
	m, err := r.load(ctx, modality)
	if err != nil {
		return nil, false, err
	}
	vec, ok := m[id]
	return vec, ok, nil
}

func (r *Repo) load(ctx context.Context, modality domain.Modality) (map[string]domain.Vector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.maps[modality]; ok {
		return m, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, ok := r.paths[modality]
	if !ok {
		return nil, fmt.Errorf("%w: no store configured for modality %s", domain.ErrStoreUnavailable, modality)
	}

	m, err := readFile(path, modality)
	if err != nil {
		return nil, err
	}

	r.maps[modality] = m
	return m, nil
}

// readFile parses {"id": [floats...], ...} and enforces the single-modality
// invariant: every vector shares one dimensionality.
func readFile(path string, modality domain.Modality) (map[string]domain.Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s store %s: %w", domain.ErrStoreUnavailable, modality, path, err)
	}

	var raw map[string][]float32
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %s store %s: %w", domain.ErrStoreUnavailable, modality, path, err)
	}

	m := make(map[string]domain.Vector, len(raw))
	dim := -1
	for id, values := range raw {
		if dim == -1 {
			dim = len(values)
		} else if len(values) != dim {
			return nil, fmt.Errorf("%w: %s store %s: vector %s has dim %d, want %d",
				domain.ErrStoreUnavailable, modality, path, id, len(values), dim)
		}
		m[id] = domain.Vector(values)
	}
	return m, nil
}
