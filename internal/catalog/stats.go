// SPDX-License-Identifier: MIT
package catalog

import (
	"github.com/thatcatcamp/palettekitty/internal/models"
)

// Stats describes the stored catalog
type Stats struct {
	TotalCount       int                     `json:"totalCount"`
	TotalSizeBytes   int                     `json:"totalSizeBytes"`
	CountsByCategory map[models.Category]int `json:"countsByCategory"`
}

// Stats counts palettes per category and measures the serialized catalog.
// Categories with no palettes are omitted.
func (r *Repository) Stats() Stats {
	items := r.List()

	stats := Stats{
		TotalCount:       len(items),
		CountsByCategory: make(map[models.Category]int),
	}
	for _, p := range items {
		stats.CountsByCategory[p.Category]++
	}

	if raw, err := encode(items, ""); err == nil {
		stats.TotalSizeBytes = len(raw)
	}
	return stats
}
