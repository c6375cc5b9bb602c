package skintone

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of colours recommended for every category.
const PaletteSize = 7

var palettes = map[Category][PaletteSize]string{
	Fair: {
		"#E6B3B3", // soft pink
		"#D1E6B3", // soft lime
		"#B3E6CC", // mint
		"#B3CCE6", // baby blue
		"#D1B3E6", // lavender
		"#800000", // burgundy
		"#008080", // teal
	},
	Light: {
		"#FFB6C1", // light pink
		"#98FB98", // pale green
		"#ADD8E6", // light blue
		"#DDA0DD", // plum
		"#F08080", // coral
		"#4682B4", // steel blue
		"#556B2F", // olive green
	},
	Medium: {
		"#FF6347", // tomato
		"#6B8E23", // olive drab
		"#4169E1", // royal blue
		"#BA55D3", // medium orchid
		"#20B2AA", // light sea green
		"#CD5C5C", // indian red
		"#DAA520", // goldenrod
	},
	Olive: {
		"#FF4500", // orange red
		"#2E8B57", // sea green
		"#9932CC", // dark orchid
		"#8B4513", // saddle brown
		"#008B8B", // dark cyan
		"#B8860B", // dark goldenrod
		"#C71585", // medium violet red
	},
	Tan: {
		"#FF8C00", // dark orange
		"#006400", // dark green
		"#8B008B", // dark magenta
		"#E9967A", // dark salmon
		"#8FBC8F", // dark sea green
		"#483D8B", // dark slate blue
		"#B22222", // firebrick
	},
	Deep: {
		"#FFA500", // orange
		"#00FF00", // lime
		"#FF00FF", // magenta
		"#00FFFF", // cyan
		"#FFFF00", // yellow
		"#800080", // purple
		"#DC143C", // crimson
	},
	Dark: {
		"#FFD700", // gold
		"#7CFC00", // lawn green
		"#FF1493", // deep pink
		"#00BFFF", // deep sky blue
		"#F0E68C", // khaki
		"#ADFF2F", // green yellow
		"#FF69B4", // hot pink
	},
}

// ColorRecommendations returns the seven "#RRGGBB" colours recommended for a
// category. Unrecognized categories get the Medium palette. The returned slice
// is a copy and may be modified by the caller.
func ColorRecommendations(category string) []string {
	p, ok := palettes[Category(category)]
	if !ok {
		logger.WithField("category", category).Debug("unrecognized category, using Medium palette")
		p = palettes[DefaultCategory]
	}
	out := make([]string, PaletteSize)
	copy(out, p[:])
	return out
}

// Palette returns the recommended colours for c.
func (c Category) Palette() []string {
	return ColorRecommendations(string(c))
}

// Swatch describes one palette entry in several colour spaces.
type Swatch struct {
	Hex string     `json:"hex"`
	RGB [3]uint8   `json:"rgb"`
	HSL [3]int     `json:"hsl"` // hue 0-360, saturation and lightness 0-100
	Lab [3]float64 `json:"lab"` // L 0-100, a/b unclamped
}

// Swatches parses the palette for category into Swatch values.
func Swatches(category string) ([]Swatch, error) {
	hexes := ColorRecommendations(category)
	out := make([]Swatch, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid palette entry %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		hue, sat, light := c.Hsl()
		l, a, bb := c.Lab()
		out = append(out, Swatch{
			Hex: h,
			RGB: [3]uint8{r, g, b},
			HSL: [3]int{int(hue), int(sat * 100), int(light * 100)},
			Lab: [3]float64{round2(l * labScale), round2(a * labScale), round2(bb * labScale)},
		})
	}
	return out, nil
}

// RenderPalette draws the palette for category as a horizontal strip of
// size x size squares.
func RenderPalette(category string, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid swatch size %d", size)
	}
	swatches, err := Swatches(category)
	if err != nil {
		return nil, err
	}
	strip := imaging.New(size*len(swatches), size, color.White)
	for i, s := range swatches {
		square := imaging.New(size, size, color.NRGBA{R: s.RGB[0], G: s.RGB[1], B: s.RGB[2], A: 255})
		strip = imaging.Paste(strip, square, image.Pt(i*size, 0))
	}
	return strip, nil
}
