package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kankodori/spotfinder/internal/domain"
)

// catalogFile is the JSON file layout: {"spots": [...]}.
type catalogFile struct {
	Spots []spotDTO `json:"spots"`
}

// spotDTO mirrors the stored record shape, including the nested long-form
// description carried over from the photo-service export.
type spotDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Location    string         `json:"location"`
	Title       string         `json:"title"`
	Tag         string         `json:"tag"`
	Explain     string         `json:"explain"`
	Caption     string         `json:"caption"`
	CaptionJA   string         `json:"caption_ja"`
	Description descriptionDTO `json:"description"`
}

type descriptionDTO struct {
	Content string `json:"_content"`
}

// readFile loads and validates the catalog. Any failure — missing file,
// bad JSON, a record without id or name — maps to domain.ErrCatalogUnavailable:
// the deployment is misconfigured and there is nothing to rank against.
func readFile(path string) ([]domain.Spot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCatalogUnavailable, path, err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrCatalogUnavailable, path, err)
	}

	spots := make([]domain.Spot, 0, len(file.Spots))
	for i, dto := range file.Spots {
		spot := domain.Spot{
			ID:          dto.ID,
			Name:        dto.Name,
			Location:    dto.Location,
			Title:       dto.Title,
			Tag:         dto.Tag,
			Explain:     dto.Explain,
			Caption:     dto.Caption,
			CaptionJA:   dto.CaptionJA,
			Description: dto.Description.Content,
		}
		if err := spot.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", domain.ErrCatalogUnavailable, i, err)
		}
		spots = append(spots, spot)
	}
	return spots, nil
}
