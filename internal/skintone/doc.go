// Package skintone estimates a dominant skin tone from a photo, recommends a
// complementary colour palette, and re-renders the photo with the skin region
// shifted toward another tone.
//
// # Pipeline
//
// All work happens in CIE L*a*b* (D65 white), with L in [0,100] and a/b
// roughly in [-127,127]:
//
//  1. DetectSkinTone converts the image to Lab, masks pixels inside the strict
//     threshold band (falling back to the lenient band when fewer than
//     MinSkinPixels match) and classifies the mean lightness of the mask.
//  2. ColorRecommendations maps a category to its fixed 7-colour palette.
//  3. AdjustSkinTone masks with the lenient band only, shifts L toward the
//     target lightness and nudges a/b by fixed per-category offsets, then
//     converts back to RGB.
//
// Detection uses two passes while adjustment uses one. The asymmetry is kept
// as-is for compatibility with existing results.
//
// # Failure Model
//
// The three pipeline operations never fail from the caller's point of view.
// Internal failures degrade to defaults: Medium for detection, the unchanged
// input for adjustment, the Medium palette for unknown categories. Detect and
// Adjust expose the same computation with an Err diagnostic (ErrConversion,
// ErrInsufficientSkin, ErrUnrecognizedCategory) for tests and logs.
//
// # Thread Safety
//
// Every operation is a pure function of its arguments. Inputs are never
// mutated and outputs are freshly allocated, so calls may run concurrently.
package skintone
