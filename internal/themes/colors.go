// SPDX-License-Identifier: MIT
package themes

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/thatcatcamp/palettekitty/internal/models"
)

// fallbackPrimary is used when a palette has no parseable colors
const fallbackPrimary = "#64748b"

// Colors represents all generated colors for a theme
type Colors struct {
	Primary         string // Main brand color
	PrimaryContrast string // Text drawn on Primary
	Secondary       string
	Accent          string
	Background      string // Page background
	Surface         string // Card/container background
	Text            string
	TextMuted       string
	Border          string
	Success         string
	Error           string
	Warning         string
	Swatches        []string // every palette color, in order
}

// NormalizeHex parses "#RGB" or "#RRGGBB" (case-insensitive, "#" optional)
// and returns the lowercase "#rrggbb" form
func NormalizeHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", fmt.Errorf("invalid hex color %q", s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return "", fmt.Errorf("invalid hex color %q", s)
	}
	return c.Hex(), nil
}

// byRole returns the first color with role, falling back to the color at
// position pos
func byRole(colors []models.Color, role string, pos int) (string, bool) {
	for _, c := range colors {
		if strings.EqualFold(c.Role, role) {
			if hex, err := NormalizeHex(c.Hex); err == nil {
				return hex, true
			}
		}
	}
	if pos >= 0 && pos < len(colors) {
		if hex, err := NormalizeHex(colors[pos].Hex); err == nil {
			return hex, true
		}
	}
	return "", false
}

// GenerateColors derives a full UI theme from a palette's primary,
// secondary and accent roles for light or dark mode
func GenerateColors(p models.Palette, darkMode bool) *Colors {
	primary, ok := byRole(p.Colors, "primary", 0)
	if !ok {
		primary = fallbackPrimary
	}
	secondary, ok := byRole(p.Colors, "secondary", 1)
	if !ok {
		secondary = primary
	}
	accent, ok := byRole(p.Colors, "accent", 2)
	if !ok {
		accent = secondary
	}

	var colors *Colors
	if darkMode {
		colors = generateDarkColors(primary, secondary, accent)
	} else {
		colors = generateLightColors(primary, secondary, accent)
	}
	colors.PrimaryContrast = ContrastText(colors.Primary)

	colors.Swatches = make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		if hex, err := NormalizeHex(c.Hex); err == nil {
			colors.Swatches = append(colors.Swatches, hex)
		}
	}
	return colors
}

func generateLightColors(primary, secondary, accent string) *Colors {
	return &Colors{
		Primary:    primary,
		Secondary:  secondary,
		Accent:     accent,
		Background: "#ffffff",
		Surface:    tint(primary, "#ffffff", 0.96),
		Text:       "#000000",
		TextMuted:  "#6b7280",
		Border:     tint(primary, "#ffffff", 0.85),
		Success:    "#22c55e",
		Error:      "#ef4444",
		Warning:    "#f59e0b",
	}
}

// dark mode lifts the brand colors so they stay readable on a dark ground
func generateDarkColors(primary, secondary, accent string) *Colors {
	return &Colors{
		Primary:    tint(primary, "#ffffff", 0.35),
		Secondary:  tint(secondary, "#ffffff", 0.35),
		Accent:     tint(accent, "#ffffff", 0.35),
		Background: "#0f172a",
		Surface:    tint(primary, "#0f172a", 0.85),
		Text:       "#f1f5f9",
		TextMuted:  "#94a3b8",
		Border:     "#334155",
		Success:    "#22c55e",
		Error:      "#ef4444",
		Warning:    "#f59e0b",
	}
}

// tint blends hex toward target by t (0 keeps hex, 1 gives target)
func tint(hex, target string, t float64) string {
	a, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	b, err := colorful.Hex(target)
	if err != nil {
		return hex
	}
	return a.BlendLab(b, t).Clamped().Hex()
}

// RelativeLuminance is the WCAG relative luminance of hex, or 0 if hex does
// not parse
func RelativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio is the WCAG contrast ratio between two colors, from 1 to 21
func ContrastRatio(a, b string) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ContrastText picks black or white, whichever reads better on bg
func ContrastText(bg string) string {
	if ContrastRatio(bg, "#000000") >= ContrastRatio(bg, "#ffffff") {
		return "#000000"
	}
	return "#ffffff"
}
