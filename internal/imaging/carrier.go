package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

var (
	// ErrUnreadableImage marks failures to open or decode an image file.
	ErrUnreadableImage = errors.New("unreadable image")

	// ErrWriteFailed marks failures to encode or write an image file.
	ErrWriteFailed = errors.New("image write failed")
)

// ImageError is a boundary failure on an image file. It unwraps to both its
// Kind (ErrUnreadableImage or ErrWriteFailed) and the underlying cause.
type ImageError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("failed to %s image %s: %v", e.Op, e.Path, e.Err)
}

func (e *ImageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// DefaultFormats is the carrier extension set used when none is configured.
var DefaultFormats = []string{".png"}

// Carrier is an image normalised to 8-bit RGB and flattened into one sample
// stream: row-major pixels, then R, G, B within each pixel.
//
// len(Samples) is always Width*Height*3.
type Carrier struct {
	Width   int
	Height  int
	Samples []byte
}

// CarrierFromImage converts img to a Carrier. Alpha is discarded without
// compositing, palette and gray images are expanded, and 16-bit channels keep
// their high byte. The source image is not modified.
func CarrierFromImage(img image.Image) *Carrier {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	samples := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			samples = append(samples, row[x], row[x+1], row[x+2])
		}
	}

	return &Carrier{Width: w, Height: h, Samples: samples}
}

// Image rebuilds an opaque image from the carrier samples.
func (c *Carrier) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for i, j := 0, 0; i+2 < len(c.Samples) && j+3 < len(img.Pix); i, j = i+3, j+4 {
		img.Pix[j] = c.Samples[i]
		img.Pix[j+1] = c.Samples[i+1]
		img.Pix[j+2] = c.Samples[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img
}

// DecodeCarrier reads the image at path and normalises it to RGB.
func DecodeCarrier(path string) (*Carrier, error) {
	img, _, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return CarrierFromImage(img), nil
}

// SaveCarrier writes c to path using a lossless encoder chosen by the path's
// extension: ".png" or ".bmp".
func SaveCarrier(c *Carrier, path string) error {
	if len(c.Samples) != c.Width*c.Height*3 {
		return &ImageError{Op: "encode", Path: path, Kind: ErrWriteFailed,
			Err: fmt.Errorf("sample count %d does not match %dx%d RGB", len(c.Samples), c.Width, c.Height)}
	}

	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		return &ImageError{Op: "encode", Path: path, Kind: ErrWriteFailed,
			Err: fmt.Errorf("no lossless encoder for extension %q", filepath.Ext(path))}
	}

	if err := imgio.Save(path, c.Image(), enc); err != nil {
		return &ImageError{Op: "write", Path: path, Kind: ErrWriteFailed, Err: err}
	}
	return nil
}

// CarrierCheck is the result of IsValidCarrier.
type CarrierCheck struct {
	Valid  bool   `json:"valid"`
	Format string `json:"format,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// IsValidCarrier checks that path names an existing regular file whose
// extension is in formats (case-insensitive, e.g. ".png") and whose contents
// decode as that same format. A nil formats uses DefaultFormats.
func IsValidCarrier(path string, formats []string) CarrierCheck {
	if formats == nil {
		formats = DefaultFormats
	}

	ext := strings.ToLower(filepath.Ext(path))
	allowed := false
	for _, f := range formats {
		if strings.ToLower(f) == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return CarrierCheck{Reason: fmt.Sprintf("unsupported extension %q, want one of %v", ext, formats)}
	}

	stat, err := os.Stat(path)
	if err != nil {
		return CarrierCheck{Reason: err.Error()}
	}
	if !stat.Mode().IsRegular() {
		return CarrierCheck{Reason: "not a regular file"}
	}

	f, err := os.Open(path)
	if err != nil {
		return CarrierCheck{Reason: err.Error()}
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return CarrierCheck{Reason: fmt.Sprintf("not a decodable image: %v", err)}
	}
	if "."+format != ext {
		return CarrierCheck{Format: format, Reason: fmt.Sprintf("contents are %s, extension is %s", format, ext)}
	}

	return CarrierCheck{Valid: true, Format: format}
}

// DefaultOutputPath names the stego output for src: prefix + sanitised base
// name, in the same directory as src.
func DefaultOutputPath(src, prefix string) string {
	return filepath.Join(filepath.Dir(src), SanitizeFilename(prefix+filepath.Base(src)))
}

// SanitizeFilename replaces characters that are unsafe in file names with '_'.
// It must be given a base name, not a path, since separators are replaced too.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
