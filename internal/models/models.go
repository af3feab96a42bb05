// SPDX-License-Identifier: MIT
package models

import (
	"time"
)

// Category classifies a palette
type Category string

const (
	CategoryClassic  Category = "classic"
	CategoryModern   Category = "modern"
	CategorySeasonal Category = "seasonal"
	CategoryBrand    Category = "brand"
	CategoryNature   Category = "nature"
	CategoryCustom   Category = "custom"
)

// Categories returns every category in display order
func Categories() []Category {
	return []Category{
		CategoryClassic,
		CategoryModern,
		CategorySeasonal,
		CategoryBrand,
		CategoryNature,
		CategoryCustom,
	}
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory returns the category named s, or false if there is none
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

// Color is a single swatch within a palette
type Color struct {
	Hex  string `json:"hex"`  // "#RRGGBB" or "#RGB", not validated on write
	Name string `json:"name"`
	Role string `json:"role"` // "primary", "secondary", "accent", ...
}

// Palette is the unit of storage in the catalog
type Palette struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Colors      []Color   `json:"colors"`
	ColorTheory string    `json:"colorTheory"`
	UseCases    []string  `json:"useCases"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Draft holds the caller-supplied fields of a palette. The catalog assigns
// the ID and timestamps.
type Draft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Colors      []Color  `json:"colors"`
	ColorTheory string   `json:"colorTheory"`
	UseCases    []string `json:"useCases"`
	Category    Category `json:"category"`
}

// Patch is a partial update. Nil pointers and nil slices leave the field
// unchanged; an empty non-nil slice clears it.
type Patch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Colors      []Color   `json:"colors,omitempty"`
	ColorTheory *string   `json:"colorTheory,omitempty"`
	UseCases    []string  `json:"useCases,omitempty"`
	Category    *Category `json:"category,omitempty"`
}

// Empty reports whether the patch changes nothing
func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Colors == nil &&
		p.ColorTheory == nil && p.UseCases == nil && p.Category == nil
}

// Draft returns the user-editable fields of the palette
func (p Palette) Draft() Draft {
	return Draft{
		Name:        p.Name,
		Description: p.Description,
		Colors:      CloneColors(p.Colors),
		ColorTheory: p.ColorTheory,
		UseCases:    CloneStrings(p.UseCases),
		Category:    p.Category,
	}
}

// Clone returns a deep copy of the palette
func (p Palette) Clone() Palette {
	p.Colors = CloneColors(p.Colors)
	p.UseCases = CloneStrings(p.UseCases)
	return p
}

// Apply merges the set fields of patch into p. Timestamps are left alone.
func (p *Palette) Apply(patch Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Colors != nil {
		p.Colors = CloneColors(patch.Colors)
	}
	if patch.ColorTheory != nil {
		p.ColorTheory = *patch.ColorTheory
	}
	if patch.UseCases != nil {
		p.UseCases = CloneStrings(patch.UseCases)
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
}

// CloneColors copies a color slice, normalising nil to empty so that
// serialized palettes always carry an array.
func CloneColors(in []Color) []Color {
	out := make([]Color, len(in))
	copy(out, in)
	return out
}

// CloneStrings copies a string slice, normalising nil to empty
func CloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// KVEntry is one row of the relational key-value substrate
type KVEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:191"`
	Value     string `gorm:"type:longtext;not null"`
	UpdatedAt time.Time
}

// TableName overrides for consistent naming
func (KVEntry) TableName() string {
	return "kv_entries"
}
