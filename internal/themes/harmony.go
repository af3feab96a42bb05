// SPDX-License-Identifier: MIT
package themes

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/thatcatcamp/palettekitty/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Generation limits
const (
	DefaultCount = 5
	MinCount     = 2
	MaxCount     = 10
)

// Scheme is a color harmony rule
type Scheme string

const (
	Complementary      Scheme = "complementary"
	Analogous          Scheme = "analogous"
	Triadic            Scheme = "triadic"
	SplitComplementary Scheme = "split-complementary"
	Tetradic           Scheme = "tetradic"
	Monochromatic      Scheme = "monochromatic"
)

// Schemes returns every supported scheme
func Schemes() []Scheme {
	return []Scheme{Complementary, Analogous, Triadic, SplitComplementary, Tetradic, Monochromatic}
}

// ParseScheme accepts a scheme name; "" selects analogous
func ParseScheme(s string) (Scheme, error) {
	if s == "" {
		return Analogous, nil
	}
	for _, known := range Schemes() {
		if Scheme(strings.ToLower(s)) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown scheme %q", s)
}

var hueOffsets = map[Scheme][]float64{
	Complementary:      {0, 180},
	Analogous:          {0, 30, -30},
	Triadic:            {0, 120, 240},
	SplitComplementary: {0, 150, 210},
	Tetradic:           {0, 90, 180, 270},
	Monochromatic:      {0},
}

var schemeTheory = map[Scheme]string{
	Complementary:      "Complementary: hues opposite each other on the color wheel",
	Analogous:          "Analogous: neighbouring hues within 30 degrees",
	Triadic:            "Triadic: three hues evenly spaced around the wheel",
	SplitComplementary: "Split-complementary: a base hue and the two neighbours of its complement",
	Tetradic:           "Tetradic: two complementary pairs at right angles",
	Monochromatic:      "Monochromatic: one hue at different lightness and chroma",
}

var schemeUseCases = map[Scheme][]string{
	Complementary:      {"calls to action", "sports"},
	Analogous:          {"editorial", "backgrounds"},
	Triadic:            {"illustration", "children's products"},
	SplitComplementary: {"marketing", "infographics"},
	Tetradic:           {"data visualisation", "games"},
	Monochromatic:      {"minimal interfaces", "branding"},
}

// ErrNoBase is returned when a request has neither a base color nor a prompt
var ErrNoBase = errors.New("a base color or a prompt is required")

// Request describes the palette to generate
type Request struct {
	Prompt string // free text; seeds the base hue when Base is empty
	Base   string // "#RRGGBB" or "#RGB"
	Scheme Scheme
	Count  int
}

// Generator produces palette drafts suitable for catalog creation
type Generator interface {
	Generate(ctx context.Context, req Request) (models.Draft, error)
}

// Harmony generates palettes locally from classic color-theory schemes
type Harmony struct{}

var _ Generator = Harmony{}

// Generate builds req.Count colors around the base color using req.Scheme
func (Harmony) Generate(ctx context.Context, req Request) (models.Draft, error) {
	if err := ctx.Err(); err != nil {
		return models.Draft{}, err
	}

	scheme, err := ParseScheme(string(req.Scheme))
	if err != nil {
		return models.Draft{}, err
	}

	count := req.Count
	if count == 0 {
		count = DefaultCount
	}
	if count < MinCount || count > MaxCount {
		return models.Draft{}, fmt.Errorf("count must be between %d and %d", MinCount, MaxCount)
	}

	base, err := baseColor(req)
	if err != nil {
		return models.Draft{}, err
	}

	h, c, l := base.Hcl()
	offsets := hueOffsets[scheme]
	colors := make([]models.Color, 0, count)
	for i := 0; i < count; i++ {
		round := i / len(offsets)
		hue := math.Mod(h+offsets[i%len(offsets)]+360, 360)

		var col colorful.Color
		if i == 0 {
			col = base
		} else if scheme == Monochromatic {
			col = colorful.Hcl(h, c*(1-0.08*float64(i)), stepLightness(l, i)).Clamped()
		} else {
			col = colorful.Hcl(hue, c, stepLightness(l, round)).Clamped()
		}

		hex := col.Hex()
		colors = append(colors, models.Color{
			Hex:  hex,
			Name: colorName(col),
			Role: roleFor(i),
		})
	}

	title := cases.Title(language.English)
	desc := strings.TrimSpace(req.Prompt)
	if desc == "" {
		desc = fmt.Sprintf("%s palette built from %s", title.String(string(scheme)), base.Hex())
	}

	return models.Draft{
		Name:        fmt.Sprintf("%s %s", colorName(base), title.String(string(scheme))),
		Description: desc,
		Colors:      colors,
		ColorTheory: schemeTheory[scheme],
		UseCases:    models.CloneStrings(schemeUseCases[scheme]),
		Category:    models.CategoryCustom,
	}, nil
}

func baseColor(req Request) (colorful.Color, error) {
	if req.Base != "" {
		hex, err := NormalizeHex(req.Base)
		if err != nil {
			return colorful.Color{}, err
		}
		c, _ := colorful.Hex(hex)
		return c, nil
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return colorful.Color{}, ErrNoBase
	}

	// the same prompt always yields the same hue
	sum := fnv.New32a()
	sum.Write([]byte(strings.ToLower(prompt)))
	hue := float64(sum.Sum32() % 360)
	return colorful.Hsl(hue, 0.65, 0.5), nil
}

// stepLightness alternates darker and lighter variants around l
func stepLightness(l float64, step int) float64 {
	if step == 0 {
		return l
	}
	delta := 0.12 * float64((step+1)/2)
	if step%2 == 1 {
		delta = -delta
	}
	return math.Max(0.1, math.Min(0.95, l+delta))
}

func roleFor(i int) string {
	switch i {
	case 0:
		return "primary"
	case 1:
		return "secondary"
	case 2:
		return "accent"
	default:
		return "neutral"
	}
}

var hueNames = []string{
	"Red", "Orange", "Yellow", "Chartreuse", "Green", "Spring",
	"Cyan", "Azure", "Blue", "Violet", "Magenta", "Rose",
}

// colorName gives a short descriptive name such as "Dark Azure"
func colorName(c colorful.Color) string {
	h, s, l := c.Hsl()
	if s < 0.1 {
		switch {
		case l < 0.2:
			return "Black"
		case l > 0.85:
			return "White"
		default:
			return "Grey"
		}
	}

	name := hueNames[int(math.Mod(h+15, 360)/30)%len(hueNames)]
	switch {
	case l < 0.3:
		return "Dark " + name
	case l > 0.75:
		return "Light " + name
	default:
		return name
	}
}
