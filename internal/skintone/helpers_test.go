package skintone

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var blue = color.NRGBA{R: 0, G: 0, B: 255, A: 255}

// labRGB returns the 8-bit colour closest to the given Lab value.
func labRGB(l, a, b float64) color.NRGBA {
	r, g, bb := colorful.Lab(l/labScale, a/labScale, b/labScale).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bb, A: 255}
}

func solidImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// splitImage paints the left half with left and the right half with right.
func splitImage(width, height int, left, right color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

// gradientImage covers a broad slice of the RGB cube.
func gradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(x * 255 / (width - 1)),
				G: uint8(y * 255 / (height - 1)),
				B: uint8((x + y) * 255 / (width + height - 2)),
				A: 255,
			})
		}
	}
	return img
}

func pixelLab(t *testing.T, img image.Image, x, y int) (float64, float64, float64) {
	t.Helper()
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return LabColor(c.R, c.G, c.B)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
