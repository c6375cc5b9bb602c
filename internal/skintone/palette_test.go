package skintone

import (
	"image/color"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexPattern = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func TestColorRecommendations_AllCategories(t *testing.T) {
	for _, c := range Categories() {
		t.Run(string(c), func(t *testing.T) {
			p := ColorRecommendations(string(c))
			require.Len(t, p, PaletteSize)
			for _, h := range p {
				assert.Regexp(t, hexPattern, h)
			}
			assert.Equal(t, p, c.Palette())
		})
	}
}

func TestColorRecommendations_ExactValues(t *testing.T) {
	assert.Equal(t, []string{"#E6B3B3", "#D1E6B3", "#B3E6CC", "#B3CCE6", "#D1B3E6", "#800000", "#008080"},
		ColorRecommendations("Fair"))
	assert.Equal(t, []string{"#FF6347", "#6B8E23", "#4169E1", "#BA55D3", "#20B2AA", "#CD5C5C", "#DAA520"},
		ColorRecommendations("Medium"))
	assert.Equal(t, []string{"#FFD700", "#7CFC00", "#FF1493", "#00BFFF", "#F0E68C", "#ADFF2F", "#FF69B4"},
		ColorRecommendations("Dark"))
}

func TestColorRecommendations_UnknownFallsBackToMedium(t *testing.T) {
	medium := ColorRecommendations("Medium")
	for _, s := range []string{"", "medium", "Not-A-Category", "Purple"} {
		assert.Equal(t, medium, ColorRecommendations(s), s)
	}
}

func TestColorRecommendations_ReturnsCopy(t *testing.T) {
	p := ColorRecommendations("Tan")
	p[0] = "#000000"
	assert.Equal(t, "#FF8C00", ColorRecommendations("Tan")[0])
}

func TestSwatches(t *testing.T) {
	swatches, err := Swatches("Medium")
	require.NoError(t, err)
	require.Len(t, swatches, PaletteSize)

	tomato := swatches[0]
	assert.Equal(t, "#FF6347", tomato.Hex)
	assert.Equal(t, [3]uint8{255, 99, 71}, tomato.RGB)
	assert.Equal(t, 9, tomato.HSL[0])
	assert.InDelta(t, 62.2, tomato.Lab[0], 0.5)
}

func TestRenderPalette(t *testing.T) {
	img, err := RenderPalette("Medium", 10)
	require.NoError(t, err)
	assert.Equal(t, 70, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())

	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0x63, B: 0x47, A: 0xFF}, img.NRGBAAt(5, 5))
	assert.Equal(t, color.NRGBA{R: 0xDA, G: 0xA5, B: 0x20, A: 0xFF}, img.NRGBAAt(65, 5))
}

func TestRenderPalette_InvalidSize(t *testing.T) {
	_, err := RenderPalette("Medium", 0)
	assert.Error(t, err)
}
