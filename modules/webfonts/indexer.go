package webfonts

import (
	"github.com/guarzo/webfonts/common/model"
)

// BuildIndex groups records by category, by variant and by subset.
// The index is always built from scratch. Families are kept in the order the
// catalog listed them; a family seen twice under the same key keeps its first
// position and the last record's files.
func BuildIndex(records []model.FontRecord) *model.FontIndex {
	idx := model.NewFontIndex()
	for _, font := range records {
		familiesAt(idx.Type, font.Category).Set(font.Family, model.FontFiles{Files: font.Files})

		for _, variant := range font.Variants {
			// a variant without a file URL is still listed
			familiesAt(idx.Weight, variant).Set(font.Family, model.FontFile{File: font.Files[variant]})
		}

		for _, subset := range font.Subsets {
			familiesAt(idx.Subset, subset).Set(font.Family, model.FontFiles{Files: font.Files})
		}
	}
	return idx
}

func familiesAt[V any](m map[string]*model.Families[V], key string) *model.Families[V] {
	families, ok := m[key]
	if !ok {
		families = &model.Families[V]{}
		m[key] = families
	}
	return families
}
