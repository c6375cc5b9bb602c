package skintone

import (
	"errors"
	"sort"
)

// Category is a skin tone label. Only the seven constants below are valid
// classifier outputs; other strings are accepted as lookup keys and fall back
// to Medium.
type Category string

// Skin tone categories, lightest to darkest.
const (
	Fair   Category = "Fair"
	Light  Category = "Light"
	Medium Category = "Medium"
	Olive  Category = "Olive"
	Tan    Category = "Tan"
	Deep   Category = "Deep"
	Dark   Category = "Dark"
)

// DefaultCategory is returned whenever detection cannot classify an image.
const DefaultCategory = Medium

var categories = []Category{Fair, Light, Medium, Olive, Tan, Deep, Dark}

// Sentinel diagnostics reported through Detection.Err and Adjustment.Err.
var (
	ErrConversion           = errors.New("color space conversion failed")
	ErrInsufficientSkin     = errors.New("insufficient skin pixels")
	ErrUnrecognizedCategory = errors.New("unrecognized skin tone category")
)

// Categories returns the seven categories ordered from lightest to darkest.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory reports whether s is exactly one of the seven labels.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if string(c) == s {
			return c, true
		}
	}
	return DefaultCategory, false
}

// lightnessCutoffs is checked top to bottom; the first cutoff not above the
// mean lightness wins.
var lightnessCutoffs = []struct {
	min      float64
	category Category
}{
	{75, Fair},
	{70, Light},
	{65, Medium},
	{60, Olive},
	{55, Tan},
	{50, Deep},
}

// Classify maps a mean skin lightness (L*, 0-100) to a category.
func Classify(meanL float64) Category {
	i := sort.Search(len(lightnessCutoffs), func(i int) bool {
		return meanL >= lightnessCutoffs[i].min
	})
	if i < len(lightnessCutoffs) {
		return lightnessCutoffs[i].category
	}
	return Dark
}

// MinLightness returns the lowest mean L* that classifies as c. Dark and
// unrecognized categories have no lower bound and return 0.
func (c Category) MinLightness() float64 {
	for _, cut := range lightnessCutoffs {
		if cut.category == c {
			return cut.min
		}
	}
	return 0
}
