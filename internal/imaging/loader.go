package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultMaxDimension caps the longer side of decoded images.
const DefaultMaxDimension = 1000

// ImageInfo describes a decoded image.
type ImageInfo struct {
	// Width and Height are the dimensions after downscaling.
	Width  int `json:"width"`
	Height int `json:"height"`

	// OriginalWidth and OriginalHeight are the dimensions as stored in the file.
	OriginalWidth  int `json:"original_width"`
	OriginalHeight int `json:"original_height"`

	// Format is the name reported by the decoder: "png", "jpeg", "gif",
	// "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// Downscaled is true when the image exceeded the maximum dimension.
	Downscaled bool `json:"downscaled"`

	// SizeBytes is the size of the encoded input.
	SizeBytes int64 `json:"size_bytes"`
}

type cacheEntry struct {
	img  image.Image
	info ImageInfo
}

// ImageCache provides thread-safe caching of decoded, size-capped images to
// avoid redundant disk reads.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear().
type ImageCache struct {
	mu           sync.RWMutex
	images       map[string]cacheEntry
	maxDimension int
}

// NewImageCache creates an empty cache that caps images at maxDimension
// pixels on the longer side. A non-positive maxDimension selects
// DefaultMaxDimension.
func NewImageCache(maxDimension int) *ImageCache {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &ImageCache{
		images:       make(map[string]cacheEntry),
		maxDimension: maxDimension,
	}
}

// MaxDimension returns the size cap applied to loaded images.
func (c *ImageCache) MaxDimension() int {
	return c.maxDimension
}

// Load retrieves an image from the cache or decodes it from disk.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

// LoadImageInfo loads an image through cache and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}
	info := e.info
	return &info, nil
}

func (c *ImageCache) load(path string) (cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to open image: %w", err)
	}
	img, info, err := DecodeBytes(data, c.maxDimension)
	if err != nil {
		return cacheEntry{}, err
	}

	e := cacheEntry{img: img, info: *info}
	c.mu.Lock()
	c.images[path] = e
	c.mu.Unlock()

	return e, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// DecodeBytes decodes an encoded image, applies EXIF orientation and
// downscales it to maxDimension (see Downscale).
//
// # Errors
//
//   - Returns error if data is empty
//   - Returns error if data is not a supported image format
func DecodeBytes(data []byte, maxDimension int) (image.Image, *ImageInfo, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("failed to decode image: empty input")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	scaled := Downscale(img, maxDimension)
	return scaled, &ImageInfo{
		Width:          scaled.Bounds().Dx(),
		Height:         scaled.Bounds().Dy(),
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
		Format:         format,
		Downscaled:     scaled.Bounds().Size() != bounds.Size(),
		SizeBytes:      int64(len(data)),
	}, nil
}

// Downscale shrinks img with a Lanczos filter so that its longer side is at
// most maxDimension, keeping the aspect ratio. Images already within the
// limit, and any image when maxDimension <= 0, are returned as-is.
//
// The new size is (int(w*ratio), int(h*ratio)) with ratio =
// maxDimension/longer side, never less than one pixel.
func Downscale(img image.Image, maxDimension int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := max(w, h)
	if maxDimension <= 0 || longest <= maxDimension {
		return img
	}

	ratio := float64(maxDimension) / float64(longest)
	newW := max(1, int(float64(w)*ratio))
	newH := max(1, int(float64(h)*ratio))
	return imaging.Resize(img, newW, newH, imaging.Lanczos)
}
