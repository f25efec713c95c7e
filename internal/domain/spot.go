package domain

import "fmt"

// Spot is one recommendable tourist-spot record. The catalog owns the
// canonical copy; the search core only ever reads it.
type Spot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Title       string `json:"title,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Explain     string `json:"explain,omitempty"`
	Caption     string `json:"caption,omitempty"`
	CaptionJA   string `json:"caption_ja,omitempty"`
	Description string `json:"description,omitempty"`
}

// Validate checks the fields required for ranking and dedup.
// The free-form text fields may all be empty.
func (s *Spot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("spot ID is required")
	}
	if s.Name == "" {
		return fmt.Errorf("spot %q: name is required", s.ID)
	}
	return nil
}

// RankedHit is a transient (id, score) pair produced by a modality ranking.
type RankedHit struct {
	ID    string
	Score float64
}

// ScoredSpot is a Spot with per-request similarity scores attached.
// Single-modality searches set SimilarityScore; fused searches set the
// three fused fields. Never persisted.
type ScoredSpot struct {
	Spot
	SimilarityScore    *float64 `json:"similarity_score,omitempty"`
	TextSimilarity     *float64 `json:"text_similarity,omitempty"`
	ImageSimilarity    *float64 `json:"image_similarity,omitempty"`
	CombinedSimilarity *float64 `json:"combined_similarity,omitempty"`
}
