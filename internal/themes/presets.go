// SPDX-License-Identifier: MIT
package themes

import "github.com/thatcatcamp/palettekitty/internal/models"

// Preset is a curated palette that can be seeded into the catalog
type Preset struct {
	Slug        string // "slate", "indigo", etc.
	Name        string
	Description string
	ColorTheory string
	Category    models.Category
	UseCases    []string
	Colors      []models.Color
}

// Draft returns the preset as input for catalog creation
func (p Preset) Draft() models.Draft {
	return models.Draft{
		Name:        p.Name,
		Description: p.Description,
		Colors:      models.CloneColors(p.Colors),
		ColorTheory: p.ColorTheory,
		UseCases:    models.CloneStrings(p.UseCases),
		Category:    p.Category,
	}
}

func swatch(hex, name, role string) models.Color {
	return models.Color{Hex: hex, Name: name, Role: role}
}

var presets = []Preset{
	{
		Slug:        "slate",
		Name:        "Slate",
		Description: "Cool greys for dense interfaces",
		ColorTheory: "Monochromatic blue-grey ramp",
		Category:    models.CategoryModern,
		UseCases:    []string{"dashboards", "documentation"},
		Colors: []models.Color{
			swatch("#64748b", "Slate", "primary"),
			swatch("#0f172a", "Ink", "secondary"),
			swatch("#cbd5e1", "Mist", "accent"),
		},
	},
	{
		Slug:        "indigo",
		Name:        "Indigo Sunrise",
		Description: "Deep indigo against warm orange",
		ColorTheory: "Complementary",
		Category:    models.CategoryModern,
		UseCases:    []string{"landing pages", "calls to action"},
		Colors: []models.Color{
			swatch("#4f46e5", "Indigo", "primary"),
			swatch("#f97316", "Tangerine", "secondary"),
			swatch("#eef2ff", "Haze", "accent"),
		},
	},
	{
		Slug:        "rose",
		Name:        "Rose",
		Description: "Bold rose with a neutral partner",
		ColorTheory: "Accent on neutral",
		Category:    models.CategoryBrand,
		UseCases:    []string{"fashion", "events"},
		Colors: []models.Color{
			swatch("#e11d48", "Rose", "primary"),
			swatch("#64748b", "Slate", "secondary"),
			swatch("#ffe4e6", "Blush", "accent"),
		},
	},
	{
		Slug:        "emerald",
		Name:        "Emerald Grove",
		Description: "Forest green warmed by amber",
		ColorTheory: "Split-complementary",
		Category:    models.CategoryNature,
		UseCases:    []string{"outdoor", "sustainability"},
		Colors: []models.Color{
			swatch("#059669", "Emerald", "primary"),
			swatch("#f59e0b", "Amber", "secondary"),
			swatch("#d1fae5", "Mint", "accent"),
		},
	},
	{
		Slug:        "navy",
		Name:        "Navy & Gold",
		Description: "Traditional navy with gold highlights",
		ColorTheory: "Complementary",
		Category:    models.CategoryClassic,
		UseCases:    []string{"finance", "institutions"},
		Colors: []models.Color{
			swatch("#000080", "Navy", "primary"),
			swatch("#fbbf24", "Gold", "secondary"),
			swatch("#f8fafc", "Paper", "accent"),
		},
	},
	{
		Slug:        "purple",
		Name:        "Orchid",
		Description: "Purple fading into pink",
		ColorTheory: "Analogous",
		Category:    models.CategoryModern,
		UseCases:    []string{"creative tools", "music"},
		Colors: []models.Color{
			swatch("#a855f7", "Purple", "primary"),
			swatch("#ec4899", "Pink", "secondary"),
			swatch("#faf5ff", "Lilac", "accent"),
		},
	},
	{
		Slug:        "teal",
		Name:        "Reef",
		Description: "Teal water and coral",
		ColorTheory: "Complementary",
		Category:    models.CategoryNature,
		UseCases:    []string{"travel", "wellness"},
		Colors: []models.Color{
			swatch("#14b8a6", "Teal", "primary"),
			swatch("#f87171", "Coral", "secondary"),
			swatch("#f0fdfa", "Foam", "accent"),
		},
	},
	{
		Slug:        "amber",
		Name:        "Harvest",
		Description: "Amber fields under a violet sky",
		ColorTheory: "Complementary",
		Category:    models.CategorySeasonal,
		UseCases:    []string{"autumn campaigns", "food"},
		Colors: []models.Color{
			swatch("#f59e0b", "Amber", "primary"),
			swatch("#6366f1", "Violet", "secondary"),
			swatch("#fffbeb", "Cream", "accent"),
		},
	},
	{
		Slug:        "rose-mono",
		Name:        "Valentine",
		Description: "Reds from rose to crimson",
		ColorTheory: "Monochromatic",
		Category:    models.CategorySeasonal,
		UseCases:    []string{"holiday promotions"},
		Colors: []models.Color{
			swatch("#e11d48", "Rose", "primary"),
			swatch("#c41e3a", "Crimson", "secondary"),
		},
	},
	{
		Slug:        "green-mono",
		Name:        "Meadow",
		Description: "Two greens from the same hue",
		ColorTheory: "Monochromatic",
		Category:    models.CategoryNature,
		UseCases:    []string{"agriculture", "health"},
		Colors: []models.Color{
			swatch("#22c55e", "Leaf", "primary"),
			swatch("#16a34a", "Fern", "secondary"),
		},
	},
	{
		Slug:        "blue-mono",
		Name:        "Harbor",
		Description: "Bright and deep blues",
		ColorTheory: "Monochromatic",
		Category:    models.CategoryClassic,
		UseCases:    []string{"corporate", "technology"},
		Colors: []models.Color{
			swatch("#3b82f6", "Sky", "primary"),
			swatch("#1e40af", "Deep", "secondary"),
		},
	},
	{
		Slug:        "neutral",
		Name:        "Neutral",
		Description: "Greys that stay out of the way",
		ColorTheory: "Achromatic",
		Category:    models.CategoryClassic,
		UseCases:    []string{"print", "minimal sites"},
		Colors: []models.Color{
			swatch("#6b7280", "Grey", "primary"),
			swatch("#4b5563", "Charcoal", "secondary"),
		},
	},
}

// GetPreset returns the preset with slug
func GetPreset(slug string) (Preset, bool) {
	for _, p := range presets {
		if p.Slug == slug {
			return clonePreset(p), true
		}
	}
	return Preset{}, false
}

// ListPresets returns all presets in display order
func ListPresets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = clonePreset(p)
	}
	return out
}

func clonePreset(p Preset) Preset {
	p.Colors = models.CloneColors(p.Colors)
	p.UseCases = models.CloneStrings(p.UseCases)
	return p
}
