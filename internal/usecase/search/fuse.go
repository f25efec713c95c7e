package search

import "github.com/kankodori/spotfinder/internal/domain"

// fuseWeighted merges the text and image rankings under an image weight in
// [0, 1]: combined = (1-w)*text + w*image over the union of ids. An id
// present in only one ranking contributes 0 on the missing side — it is
// penalized, not excluded, so a record strong in one modality still beats a
// record absent from both. Returns the fused ranking plus the per-id
// modality scores for attachment.
func fuseWeighted(text, image []domain.RankedHit, imageWeight float64) (
	[]domain.RankedHit, map[string]float64, map[string]float64,
) {
	textScores := make(map[string]float64, len(text))
	for _, h := range text {
		textScores[h.ID] = h.Score
	}
	imageScores := make(map[string]float64, len(image))
	for _, h := range image {
		imageScores[h.ID] = h.Score
	}

	union := make(map[string]struct{}, len(textScores)+len(imageScores))
	for id := range textScores {
		union[id] = struct{}{}
	}
	for id := range imageScores {
		union[id] = struct{}{}
	}

	fused := make([]domain.RankedHit, 0, len(union))
	for id := range union {
		combined := (1-imageWeight)*textScores[id] + imageWeight*imageScores[id]
		fused = append(fused, domain.RankedHit{ID: id, Score: combined})
	}
	sortHits(fused)

	return fused, textScores, imageScores
}
