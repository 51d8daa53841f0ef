package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their absolute, cleaned file
// path, so "./a.png" and "a.png" share an entry. Once an image
// is loaded, subsequent Load() calls for the same path return the cached copy without
// disk I/O.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Stale Entries
//
// The cache does not watch the filesystem. Callers that write an image to a path
// must call Evict for that path, otherwise later loads return the old pixels. This
// matters for stego output written over a previously inspected file.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, BMP, JPEG, and GIF. Only PNG and BMP are usable as carriers.
//
// Returns:
//   - image.Image: The decoded image in its native color model.
//   - error: an *ImageError wrapping ErrUnreadableImage if the file cannot be
//     opened or decoded.
func (c *ImageCache) Load(path string) (image.Image, error) {
	key := cacheKey(path)

	c.mu.RLock()
	if img, ok := c.images[key]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, _, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, cacheKey(path))
	c.mu.Unlock()
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// decodeFile opens and decodes path, returning the registered format name.
func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &ImageError{Op: "open", Path: path, Kind: ErrUnreadableImage, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", &ImageError{Op: "decode", Path: path, Kind: ErrUnreadableImage, Err: err}
	}
	return img, format, nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognised the file contents: "png", "bmp",
	// "jpeg", "gif", or "unknown". The file extension is not consulted.
	Format string `json:"format"`

	// Mode names the stored color model: "RGB", "RGBA", "L", "P", "YCbCr",
	// "CMYK", or their 16-bit variants suffixed with ";16".
	Mode string `json:"mode"`

	// HasAlpha indicates whether the stored color model carries alpha.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// FileSize is FileSizeBytes in human-readable form, e.g. "1.50 KB".
	FileSize string `json:"file_size"`
}

// LoadImageInfo loads an image through the cache and returns metadata about it.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'd.
//
// # Mode Detection
//
// The mode comes from the decoded Go image type. An *image.RGBA or *image.NRGBA
// whose pixels are all opaque is reported as "RGB", since that is how the PNG
// decoder represents 8-bit truecolor files without an alpha channel.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := os.Open(path); err == nil {
		if _, name, err := image.DecodeConfig(f); err == nil {
			format = name
		}
		f.Close()
	}

	mode, hasAlpha := colorMode(img)
	bounds := img.Bounds()

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		Mode:          mode,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
		FileSize:      FormatFileSize(stat.Size()),
	}, nil
}

func colorMode(img image.Image) (string, bool) {
	type opaquer interface{ Opaque() bool }

	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA:
		if m.(opaquer).Opaque() {
			return "RGB", false
		}
		return "RGBA", true
	case *image.RGBA64, *image.NRGBA64:
		if m.(opaquer).Opaque() {
			return "RGB;16", false
		}
		return "RGBA;16", true
	case *image.Gray:
		return "L", false
	case *image.Gray16:
		return "L;16", false
	case *image.Paletted:
		return "P", !m.Opaque()
	case *image.YCbCr:
		return "YCbCr", false
	case *image.CMYK:
		return "CMYK", false
	}

	if img.ColorModel() == color.AlphaModel || img.ColorModel() == color.Alpha16Model {
		return "A", true
	}
	return "unknown", false
}

// FormatFileSize renders a byte count with two decimals and the largest unit
// below 1024 (B, KB, MB, GB, TB).
func FormatFileSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.2f TB", value)
}
