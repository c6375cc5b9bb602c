package skintone

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
)

// defaultCurrentL stands in for the skin lightness when the mask is empty.
const defaultCurrentL = 65

// Target is the lightness goal and chroma nudge for one category.
type Target struct {
	L float64 `json:"target_l"`
	A float64 `json:"a_adjustment"`
	B float64 `json:"b_adjustment"`
}

var targets = map[Category]Target{
	Fair:   {L: 78, A: -2, B: -2},
	Light:  {L: 72, A: -1, B: -1},
	Medium: {L: 65, A: 0, B: 0},
	Olive:  {L: 62, A: 1, B: 2},
	Tan:    {L: 58, A: 2, B: 4},
	Deep:   {L: 52, A: 3, B: 5},
	Dark:   {L: 45, A: 4, B: 6},
}

// defaultTarget applies to unrecognized categories.
var defaultTarget = Target{L: 65}

// TargetFor returns the adjustment target for category and whether the
// category was recognized.
func TargetFor(category string) (Target, bool) {
	t, ok := targets[Category(category)]
	if !ok {
		return defaultTarget, false
	}
	return t, true
}

// Adjustment is the full record of a skin tone adjustment.
type Adjustment struct {
	// Image is the adjusted raster, or the input itself when Err is an
	// ErrConversion.
	Image image.Image `json:"-"`

	Target     string  `json:"target"`
	SkinPixels int     `json:"skin_pixels"`
	CurrentL   float64 `json:"current_l"`
	TargetL    float64 `json:"target_l"`
	DeltaL     float64 `json:"delta_l"`
	DeltaA     float64 `json:"delta_a"`
	DeltaB     float64 `json:"delta_b"`

	// Err records a fallback: ErrConversion (input returned unchanged) or
	// ErrUnrecognizedCategory (default target used).
	Err error `json:"-"`
}

// AdjustSkinTone returns a copy of img with its skin region shifted toward
// target. On internal failure img itself is returned.
func AdjustSkinTone(img image.Image, target string) image.Image {
	return Adjust(img, target).Image
}

// Adjust performs AdjustSkinTone and reports the values it used.
//
// Skin is masked with LenientBand only. Every masked pixel gets the same
// shift: L by target_l minus the mean masked L, a and b by the category
// offsets, each clipped to its Lab range. Unmasked pixels keep their Lab
// values.
func Adjust(img image.Image, target string) (adj Adjustment) {
	defer func() {
		if r := recover(); r != nil {
			adj = Adjustment{Image: img, Target: target, Err: fmt.Errorf("%w: %v", ErrConversion, r)}
		}
		if adj.Err != nil {
			logger.WithFields(logrus.Fields{
				"target":      target,
				"skin_pixels": adj.SkinPixels,
			}).WithError(adj.Err).Debug("skin tone adjustment fell back to default")
		}
	}()

	lab, err := ToLab(img)
	if err != nil {
		return Adjustment{Image: img, Target: target, Err: err}
	}
	mask := SkinMask(lab, LenientBand)

	currentL, ok := mask.MeanL(lab)
	if !ok {
		currentL = defaultCurrentL
	}

	t, known := TargetFor(target)
	dL := t.L - currentL

	adjusted := lab.Clone()
	for i, set := range mask.Bits {
		if !set {
			continue
		}
		p := adjusted.Pix[3*i : 3*i+3]
		p[0] = clip(p[0]+dL, 0, 100)
		p[1] = clip(p[1]+t.A, -127, 127)
		p[2] = clip(p[2]+t.B, -127, 127)
	}

	out, err := ToRGB(adjusted)
	if err != nil {
		return Adjustment{Image: img, Target: target, Err: err}
	}

	adj = Adjustment{
		Image:      out,
		Target:     target,
		SkinPixels: mask.Count(),
		CurrentL:   round2(currentL),
		TargetL:    t.L,
		DeltaL:     round2(dL),
		DeltaA:     t.A,
		DeltaB:     t.B,
	}
	if !known {
		adj.Err = fmt.Errorf("%w: %q", ErrUnrecognizedCategory, target)
	}
	return adj
}
