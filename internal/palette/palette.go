// Package palette resolves the colours used to present annotations: the
// capture area, highlights, hints and one colour per lexical category.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/ironsheep/kanjisabi/internal/morph"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB colour with straight alpha.
type Color struct {
	colorful.Color
	Alpha uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts to the standard library's non-premultiplied colour.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.Alpha}
}

// Hex formats the colour as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("%s%02x", c.Clamped().Hex(), c.Alpha)
}

// ParseHex parses "#rrggbb" (opaque) or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := uint8(0xff)
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	default:
		return Color{}, fmt.Errorf("invalid hex colour %q", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{Color: c, Alpha: alpha}, nil
}

func mustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette holds every presentation colour.
type Palette struct {
	Capture        Color
	Highlight      Color
	Hint           Color
	HintBackground Color

	categories map[morph.Category]Color
}

// Names of the non-category colours, as used in configuration.
const (
	CaptureKey        = "capture"
	HighlightKey      = "highlight"
	HintKey           = "hint"
	HintBackgroundKey = "hint_bg"
)

// Hue, chroma and lightness per category. Related categories share a hue
// family so that, e.g., all particles read alike.
var categoryHCL = map[morph.Category][3]float64{
	morph.Noun:         {250, 0.45, 0.70},
	morph.ProperNoun:   {270, 0.50, 0.65},
	morph.SuruVerb:     {230, 0.50, 0.60},
	morph.NounSuffix:   {250, 0.30, 0.80},
	morph.Pronoun:      {210, 0.40, 0.75},
	morph.Keiyoudoushi: {140, 0.50, 0.70},

	morph.AdjectiveIDictForm: {120, 0.55, 0.75},
	morph.AdjectiveIConjForm: {120, 0.40, 0.85},
	morph.NegationDictForm:   {20, 0.60, 0.55},
	morph.NegationConjForm:   {20, 0.45, 0.65},
	morph.Adverb:             {80, 0.50, 0.80},

	morph.Verb:                  {30, 0.65, 0.60},
	morph.AuxiliaryVerb:         {40, 0.40, 0.75},
	morph.ContinuativeAuxiliary: {50, 0.40, 0.80},

	morph.AttributiveParticle:     {320, 0.40, 0.75},
	morph.AdverbificationParticle: {300, 0.40, 0.75},
	morph.AdjectivisationParticle: {310, 0.35, 0.80},
	morph.ContinuativeParticle:    {290, 0.40, 0.80},
	morph.Particle:                {330, 0.25, 0.80},
	morph.CaseParticle:            {340, 0.35, 0.75},
	morph.ConnectingParticle:      {0, 0.35, 0.75},

	morph.Sign:  {0, 0, 0.60},
	morph.Other: {0, 0, 0.85},
}

// Default returns the built-in palette.
func Default() *Palette {
	p := &Palette{
		Capture:        mustHex("#00200020"),
		Highlight:      mustHex("#20000020"),
		Hint:           mustHex("#32ff00ff"),
		HintBackground: mustHex("#000024c0"),
		categories:     make(map[morph.Category]Color, len(categoryHCL)),
	}
	for c, hcl := range categoryHCL {
		p.categories[c] = Color{Color: colorful.Hcl(hcl[0], hcl[1], hcl[2]).Clamped(), Alpha: 0xa0}
	}
	return p
}

// New returns the default palette with overrides applied. Keys are the
// *Key constants or category names.
func New(overrides map[string]string) (*Palette, error) {
	p := Default()
	for name, hex := range overrides {
		if err := p.Set(name, hex); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Set replaces one colour.
func (p *Palette) Set(name, hex string) error {
	c, err := ParseHex(hex)
	if err != nil {
		return fmt.Errorf("colour %s: %w", name, err)
	}

	switch name {
	case CaptureKey:
		p.Capture = c
	case HighlightKey:
		p.Highlight = c
	case HintKey:
		p.Hint = c
	case HintBackgroundKey:
		p.HintBackground = c
	default:
		cat, err := morph.ParseCategory(name)
		if err != nil {
			return fmt.Errorf("unknown colour %q", name)
		}
		p.categories[cat] = c
	}
	return nil
}

// Category returns the colour of a lexical category.
func (p *Palette) Category(c morph.Category) Color {
	if col, ok := p.categories[c]; ok {
		return col
	}
	return p.categories[morph.Other]
}
