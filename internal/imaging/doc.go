// Package imaging provides the image I/O around the skin tone pipeline:
// decoding uploads, capping their size, encoding results for transport, and
// sampling individual pixels.
//
// # Decoding
//
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported. JPEG EXIF orientation is
// applied on decode. Every decoded image is downscaled with a Lanczos filter
// so that its longer side is at most the configured maximum dimension
// (DefaultMaxDimension unless set).
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached images are never
// modified after decoding, so callers may share them freely.
//
// # Color Representation
//
// Sampled colors are reported as:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//   - Lab: CIE L*a*b* with D65 white, L in 0-100
package imaging
