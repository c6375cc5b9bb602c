package skintone

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
)

// Pass names the threshold band that produced a detection.
type Pass string

const (
	PassStrict  Pass = "strict"
	PassLenient Pass = "lenient"
	PassNone    Pass = "none"
)

// Detection is the full record of a skin tone detection.
type Detection struct {
	Category   Category `json:"category"`
	Pass       Pass     `json:"pass"`
	SkinPixels int      `json:"skin_pixels"`
	MeanL      float64  `json:"mean_l"`

	// Err explains why Category fell back to DefaultCategory. It is nil when
	// the category was classified from the image.
	Err error `json:"-"`
}

// DetectSkinTone returns the dominant skin tone category of img. It never
// fails: unreadable images and images with too little skin yield Medium.
func DetectSkinTone(img image.Image) Category {
	return Detect(img).Category
}

// Detect classifies img like DetectSkinTone and also reports how.
func Detect(img image.Image) (d Detection) {
	defer func() {
		if r := recover(); r != nil {
			d = Detection{Category: DefaultCategory, Pass: PassNone, Err: fmt.Errorf("%w: %v", ErrConversion, r)}
		}
		if d.Err != nil {
			logger.WithFields(logrus.Fields{
				"pass":        d.Pass,
				"skin_pixels": d.SkinPixels,
			}).WithError(d.Err).Debug("skin tone detection fell back to default")
		}
	}()

	lab, err := ToLab(img)
	if err != nil {
		return Detection{Category: DefaultCategory, Pass: PassNone, Err: err}
	}

	pass := PassStrict
	mask := SkinMask(lab, StrictBand)
	if mask.Count() < MinSkinPixels {
		pass = PassLenient
		mask = SkinMask(lab, LenientBand)
	}
	if mask.Count() < MinSkinPixels {
		return Detection{
			Category:   DefaultCategory,
			Pass:       PassNone,
			SkinPixels: mask.Count(),
			Err:        fmt.Errorf("%w: %d < %d", ErrInsufficientSkin, mask.Count(), MinSkinPixels),
		}
	}

	meanL, _ := mask.MeanL(lab)
	return Detection{
		Category:   Classify(meanL),
		Pass:       pass,
		SkinPixels: mask.Count(),
		MeanL:      round2(meanL),
	}
}
