package skintone

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabColor_KnownValues(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		l, a, bb float64
	}{
		{"white", 255, 255, 255, 100, 0, 0},
		{"black", 0, 0, 0, 0, 0, 0},
		{"mid gray", 128, 128, 128, 53.59, 0, 0},
		{"pure red", 255, 0, 0, 53.24, 80.09, 67.20},
		{"pure blue", 0, 0, 255, 32.30, 79.19, -107.86},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, a, b := LabColor(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.l, l, 0.05)
			assert.InDelta(t, tt.a, a, 0.05)
			assert.InDelta(t, tt.bb, b, 0.05)
		})
	}
}

func TestToLab_Dimensions(t *testing.T) {
	img := solidImage(17, 9, labRGB(60, 15, 20))
	lab, err := ToLab(img)
	require.NoError(t, err)
	assert.Equal(t, 17, lab.Width)
	assert.Equal(t, 9, lab.Height)
	assert.Len(t, lab.Pix, 17*9*3)

	l, a, b := lab.At(16, 8)
	assert.InDelta(t, 60, l, 0.5)
	assert.InDelta(t, 15, a, 1)
	assert.InDelta(t, 20, b, 1)
}

func TestToLab_OffsetBounds(t *testing.T) {
	full := gradientImage(40, 40)
	sub := full.SubImage(image.Rect(10, 10, 30, 30))

	lab, err := ToLab(sub)
	require.NoError(t, err)
	assert.Equal(t, 20, lab.Width)

	c := full.NRGBAAt(10, 10)
	wantL, _, _ := LabColor(c.R, c.G, c.B)
	gotL, _, _ := lab.At(0, 0)
	assert.InDelta(t, wantL, gotL, 1e-9)
}

func TestToLab_IgnoresAlpha(t *testing.T) {
	opaque := solidImage(4, 4, color.NRGBA{R: 200, G: 150, B: 120, A: 255})
	translucent := solidImage(4, 4, color.NRGBA{R: 200, G: 150, B: 120, A: 90})

	a, err := ToLab(opaque)
	require.NoError(t, err)
	b, err := ToLab(translucent)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestToLab_Errors(t *testing.T) {
	_, err := ToLab(nil)
	assert.ErrorIs(t, err, ErrConversion)

	_, err = ToLab(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrConversion)
}

func TestToRGB_Errors(t *testing.T) {
	_, err := ToRGB(nil)
	assert.ErrorIs(t, err, ErrConversion)

	_, err = ToRGB(&LabImage{Width: 2, Height: 2, Pix: make([]float64, 3)})
	assert.ErrorIs(t, err, ErrConversion)
}

func TestLabRoundTrip(t *testing.T) {
	src := gradientImage(64, 48)

	lab, err := ToLab(src)
	require.NoError(t, err)
	out, err := ToRGB(lab)
	require.NoError(t, err)

	require.Equal(t, src.Bounds(), out.Bounds())
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			want, got := src.NRGBAAt(x, y), out.NRGBAAt(x, y)
			if absDiff(want.R, got.R) > 1 || absDiff(want.G, got.G) > 1 || absDiff(want.B, got.B) > 1 {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
			assert.Equal(t, uint8(255), got.A)
		}
	}
}

func TestToRGB_ClipsOutOfGamut(t *testing.T) {
	lab := &LabImage{Width: 1, Height: 1, Pix: []float64{100, 127, 127}}
	out, err := ToRGB(lab)
	require.NoError(t, err)
	c := out.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(255), c.A)
}

func TestToRGB_NegativeZIsBlack(t *testing.T) {
	// At L 0 a large b drives Z below zero; without clipping red leaks in.
	lab := &LabImage{Width: 1, Height: 1, Pix: []float64{0, 0, 51}}
	out, err := ToRGB(lab)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(0, 0))
}
