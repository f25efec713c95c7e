package search

import (
	"context"
	"testing"

	"github.com/kankodori/spotfinder/internal/domain"
)

// --- Mocks ---

type mockCatalog struct {
	spots      []domain.Spot
	err        error
	byIDCalls  int
	byLocCalls int
	lastKws    []string
}

func (m *mockCatalog) All(_ context.Context) ([]domain.Spot, error) {
	return m.spots, m.err
}

func (m *mockCatalog) ByID(_ context.Context, id string) (domain.Spot, error) {
	m.byIDCalls++
	if m.err != nil {
		return domain.Spot{}, m.err
	}
	for _, s := range m.spots {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Spot{}, domain.ErrSpotNotFound
}

func (m *mockCatalog) ByLocationKeyword(_ context.Context, keywords []string) ([]domain.Spot, error) {
	m.byLocCalls++
	m.lastKws = keywords
	if m.err != nil {
		return nil, m.err
	}
	var matched []domain.Spot
	for _, s := range m.spots {
		for _, kw := range keywords {
			if kw != "" && s.Location != "" && contains(s.Location, kw) {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched, nil
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

type mockVectors struct {
	text     map[string]domain.Vector
	image    map[string]domain.Vector
	textErr  error
	imageErr error
}

func (m *mockVectors) All(_ context.Context, modality domain.Modality) (map[string]domain.Vector, error) {
	switch modality {
	case domain.ModalityText:
		return m.text, m.textErr
	case domain.ModalityImage:
		return m.image, m.imageErr
	}
	return nil, domain.ErrStoreUnavailable
}

type mockTextEncoder struct {
	vec    domain.Vector
	err    error
	called int
}

func (m *mockTextEncoder) EncodeText(_ context.Context, _ string) (domain.EncodeResult, error) {
	m.called++
	if m.err != nil {
		return domain.EncodeResult{}, m.err
	}
	return domain.EncodeResult{Vector: m.vec}, nil
}

type mockImageEncoder struct {
	vec      domain.Vector
	err      error
	called   int
	lastPath string
}

func (m *mockImageEncoder) EncodeImage(_ context.Context, path string) (domain.EncodeResult, error) {
	m.called++
	m.lastPath = path
	if m.err != nil {
		return domain.EncodeResult{}, m.err
	}
	return domain.EncodeResult{Vector: m.vec}, nil
}

type mockExtractor struct {
	keywords []string
}

func (m *mockExtractor) Extract(_ string) []string {
	return m.keywords
}

type mockGenerator struct {
	path   string
	err    error
	called int
}

func (m *mockGenerator) Generate(_ context.Context, _ string) (string, error) {
	m.called++
	return m.path, m.err
}

// --- Fixtures ---

// testSpots is a small catalog: two spots in 函館, one elsewhere, plus a
// second photo of the ropeway sharing its display name.
func testSpots() []domain.Spot {
	return []domain.Spot{
		{ID: "a1", Name: "五稜郭公園", Location: "北海道函館市五稜郭町"},
		{ID: "b2", Name: "函館山ロープウェイ", Location: "北海道函館市元町"},
		{ID: "b3", Name: "函館山ロープウェイ", Location: "北海道函館市元町"},
		{ID: "c4", Name: "大通公園", Location: "北海道札幌市中央区"},
	}
}

func newTestService(t *testing.T) (*Service, *mockCatalog, *mockVectors, *mockTextEncoder, *mockImageEncoder, *mockExtractor) {
	t.Helper()

	catalog := &mockCatalog{spots: testSpots()}
	vectors := &mockVectors{
		text: map[string]domain.Vector{
			"a1": {1, 0, 0},
			"b2": {0.8, 0.6, 0},
			"b3": {0.6, 0.8, 0},
			"c4": {0, 1, 0},
		},
		image: map[string]domain.Vector{
			"a1": {0, 0, 1},
			"b2": {0.6, 0, 0.8},
			"b3": {0.8, 0, 0.6},
			"c4": {1, 0, 0},
		},
	}
	textEnc := &mockTextEncoder{vec: domain.Vector{1, 0, 0}}
	imageEnc := &mockImageEncoder{vec: domain.Vector{0, 0, 1}}
	extractor := &mockExtractor{}

	svc := New(catalog, vectors, textEnc, imageEnc, extractor)
	return svc, catalog, vectors, textEnc, imageEnc, extractor
}

func ids(results []domain.ScoredSpot) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
