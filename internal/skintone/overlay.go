package skintone

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
)

// HighlightColor paints masked pixels in MaskOverlay.
var HighlightColor = color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

// MaskOverlay highlights the pixels of img that fall inside band, blending
// HighlightColor over them at the given opacity (0-1). It returns the
// overlay and the number of highlighted pixels.
func MaskOverlay(img image.Image, band Band, opacity float64) (*image.RGBA, int, error) {
	lab, err := ToLab(img)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build skin mask: %w", err)
	}
	mask := SkinMask(lab, band)

	base := imaging.Clone(img)
	highlight := imaging.Clone(base)
	for i, set := range mask.Bits {
		if !set {
			continue
		}
		p := highlight.Pix[4*i : 4*i+4]
		p[0], p[1], p[2], p[3] = HighlightColor.R, HighlightColor.G, HighlightColor.B, HighlightColor.A
	}
	return blend.Opacity(base, highlight, opacity), mask.Count(), nil
}
