// SPDX-License-Identifier: MIT
package handlers

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/thatcatcamp/palettekitty/internal/models"
)

// strict strips all markup; palette text is plain text
var strict = bluemonday.StrictPolicy()

func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

func cleanColors(in []models.Color) []models.Color {
	if in == nil {
		return nil
	}
	out := make([]models.Color, len(in))
	for i, c := range in {
		out[i] = models.Color{
			Hex:  cleanText(c.Hex),
			Name: cleanText(c.Name),
			Role: cleanText(c.Role),
		}
	}
	return out
}

func cleanStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = cleanText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sanitizeDraft(d models.Draft) models.Draft {
	return models.Draft{
		Name:        cleanText(d.Name),
		Description: cleanText(d.Description),
		Colors:      cleanColors(d.Colors),
		ColorTheory: cleanText(d.ColorTheory),
		UseCases:    cleanStrings(d.UseCases),
		Category:    d.Category,
	}
}

func sanitizePatch(p models.Patch) models.Patch {
	clean := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := cleanText(*s)
		return &v
	}
	return models.Patch{
		Name:        clean(p.Name),
		Description: clean(p.Description),
		Colors:      cleanColors(p.Colors),
		ColorTheory: clean(p.ColorTheory),
		UseCases:    cleanStrings(p.UseCases),
		Category:    p.Category,
	}
}
