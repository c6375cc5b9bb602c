package skintone

import "github.com/anthonynsimon/bild/parallel"

// MinSkinPixels is the smallest mask that counts as "skin detected".
const MinSkinPixels = 100

// Range is an inclusive interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether Min <= v <= Max.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Band is a box in Lab space. A pixel is inside the band when all three
// channels fall inside their ranges.
type Band struct {
	Name string `json:"name"`
	L    Range  `json:"l"`
	A    Range  `json:"a"`
	B    Range  `json:"b"`
}

// Contains reports whether the Lab colour (l, a, b) lies inside the band.
func (band Band) Contains(l, a, b float64) bool {
	return band.L.Contains(l) && band.A.Contains(a) && band.B.Contains(b)
}

// Threshold bands used for skin masking. LenientBand is a superset of
// StrictBand along every channel.
var (
	StrictBand = Band{
		Name: "strict",
		L:    Range{50, 80},
		A:    Range{5, 30},
		B:    Range{10, 40},
	}
	LenientBand = Band{
		Name: "lenient",
		L:    Range{30, 90},
		A:    Range{0, 35},
		B:    Range{5, 45},
	}
)

// BandByName returns StrictBand or LenientBand.
func BandByName(name string) (Band, bool) {
	switch name {
	case StrictBand.Name:
		return StrictBand, true
	case LenientBand.Name:
		return LenientBand, true
	}
	return Band{}, false
}

// Mask flags the pixels of an image that look like skin.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
	count  int
}

// SkinMask marks every pixel of lab that lies inside band.
func SkinMask(lab *LabImage, band Band) *Mask {
	m := &Mask{Width: lab.Width, Height: lab.Height, Bits: make([]bool, lab.Width*lab.Height)}
	parallel.Line(lab.Height, func(start, end int) {
		for i := start * lab.Width; i < end*lab.Width; i++ {
			m.Bits[i] = band.Contains(lab.Pix[3*i], lab.Pix[3*i+1], lab.Pix[3*i+2])
		}
	})
	for _, set := range m.Bits {
		if set {
			m.count++
		}
	}
	return m
}

// At reports whether (x, y) is masked.
func (m *Mask) At(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// Count returns the number of masked pixels.
func (m *Mask) Count() int {
	return m.count
}

// MeanL returns the mean lightness over the masked pixels of lab and
// whether the mask had any pixels at all.
func (m *Mask) MeanL(lab *LabImage) (float64, bool) {
	if m.count == 0 {
		return 0, false
	}
	var sum float64
	for i, set := range m.Bits {
		if set {
			sum += lab.Pix[3*i]
		}
	}
	return sum / float64(m.count), true
}
