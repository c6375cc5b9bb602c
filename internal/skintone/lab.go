package skintone

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// go-colorful works with L in [0,1]; this package uses the conventional
// [0,100] scale for L and the matching scale for a and b.
const labScale = 100

// LabImage is an image in CIE L*a*b* space (D65 white).
type LabImage struct {
	Width  int
	Height int
	// Pix holds L, a, b triples in row-major order.
	Pix []float64
}

// At returns the Lab values of the pixel at (x, y).
func (m *LabImage) At(x, y int) (l, a, b float64) {
	i := 3 * (y*m.Width + x)
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Clone returns a deep copy of m.
func (m *LabImage) Clone() *LabImage {
	pix := make([]float64, len(m.Pix))
	copy(pix, m.Pix)
	return &LabImage{Width: m.Width, Height: m.Height, Pix: pix}
}

// ToLab converts an RGB image to Lab. Alpha is discarded: every pixel is read
// as its non-premultiplied 8-bit RGB value.
func ToLab(img image.Image) (*LabImage, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrConversion)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image %v", ErrConversion, bounds)
	}

	src := imaging.Clone(img)
	width, height := bounds.Dx(), bounds.Dy()
	lab := &LabImage{Width: width, Height: height, Pix: make([]float64, 3*width*height)}

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			in := src.Pix[y*src.Stride:]
			out := lab.Pix[3*y*width:]
			for x := 0; x < width; x++ {
				out[3*x], out[3*x+1], out[3*x+2] = LabColor(in[4*x], in[4*x+1], in[4*x+2])
			}
		}
	})
	return lab, nil
}

// ToRGB converts a Lab image back to an opaque 8-bit RGB image. Channels are
// clipped to the sRGB gamut before quantisation.
func ToRGB(lab *LabImage) (*image.NRGBA, error) {
	if lab == nil || lab.Width <= 0 || lab.Height <= 0 || len(lab.Pix) != 3*lab.Width*lab.Height {
		return nil, fmt.Errorf("%w: malformed Lab image", ErrConversion)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, lab.Width, lab.Height))
	parallel.Line(lab.Height, func(start, end int) {
		for y := start; y < end; y++ {
			in := lab.Pix[3*y*lab.Width:]
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < lab.Width; x++ {
				c := labToColor(in[3*x], in[3*x+1], in[3*x+2])
				out[4*x], out[4*x+1], out[4*x+2] = c.RGB255()
				out[4*x+3] = 0xff
			}
		}
	})
	return dst, nil
}

// labToColor converts Lab on the package's scale to an in-gamut colour.
// Negative Z, reachable only near L 0 with large b, is set to 0 before the
// XYZ to RGB step.
func labToColor(l, a, b float64) colorful.Color {
	x, y, z := colorful.LabToXyz(l/labScale, a/labScale, b/labScale)
	if z < 0 {
		z = 0
	}
	return colorful.Xyz(x, y, z).Clamped()
}

// LabColor converts one 8-bit RGB colour to Lab on the package's scale.
func LabColor(r, g, b uint8) (l, a, bb float64) {
	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	l, a, bb = c.Lab()
	return l * labScale, a * labScale, bb * labScale
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
