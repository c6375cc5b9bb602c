package skintone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		meanL float64
		want  Category
	}{
		{100, Fair},
		{77, Fair},
		{75, Fair},
		{74.99, Light},
		{70, Light},
		{69.5, Medium},
		{65, Medium},
		{60, Olive},
		{57, Tan},
		{55, Tan},
		{52, Deep},
		{50, Deep},
		{49.99, Dark},
		{40, Dark},
		{0, Dark},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.meanL), "meanL=%v", tt.meanL)
	}
}

func TestCategories(t *testing.T) {
	got := Categories()
	assert.Equal(t, []Category{Fair, Light, Medium, Olive, Tan, Deep, Dark}, got)

	got[0] = "changed"
	assert.Equal(t, Fair, Categories()[0], "Categories must return a copy")
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(string(c))
		assert.True(t, ok, c)
		assert.Equal(t, c, got)
	}

	for _, s := range []string{"", "fair", "MEDIUM", "Not-A-Category", " Tan"} {
		got, ok := ParseCategory(s)
		assert.False(t, ok, s)
		assert.Equal(t, Medium, got)
	}
}

func TestCategory_MinLightness(t *testing.T) {
	for _, c := range Categories() {
		assert.Equal(t, c, Classify(c.MinLightness()), c)
	}
	assert.Equal(t, 75.0, Fair.MinLightness())
	assert.Equal(t, 0.0, Dark.MinLightness())
	assert.Equal(t, 0.0, Category("Unknown").MinLightness())
}
