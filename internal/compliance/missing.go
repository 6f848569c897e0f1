package compliance

import (
	"strings"

	"vendorportal/internal/model"
)

// NormalizeDocumentType is the key used to match uploaded documents against presets.
func NormalizeDocumentType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MissingDocuments returns the required presets no uploaded document satisfies.
// A nil docs or presets slice means the data has not loaded and yields an empty list,
// so nothing is reported missing while the picture is incomplete.
func MissingDocuments(docs []model.Document, presets []model.DocumentPreset) []model.DocumentPreset {
	missing := make([]model.DocumentPreset, 0)
	if docs == nil || presets == nil {
		return missing
	}

	uploaded := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		uploaded[NormalizeDocumentType(d.DocumentType)] = struct{}{}
	}

	for _, p := range presets {
		if !p.IsRequired {
			continue
		}
		if _, ok := uploaded[NormalizeDocumentType(p.DocumentName)]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}
