package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// CompareResult summarises the differences between a cover and a stego image.
type CompareResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// ChangedChannels counts samples whose value differs.
	ChangedChannels int `json:"changed_channels"`

	// ChangedPixels counts pixels with at least one differing sample.
	ChangedPixels int `json:"changed_pixels"`

	// MaxChannelDelta is the largest absolute sample difference. LSB
	// embedding never exceeds 1.
	MaxChannelDelta int `json:"max_channel_delta"`

	// LSBOnly is true when every difference is confined to bit 0.
	LSBOnly bool `json:"lsb_only"`

	// LastChangedIndex is the highest differing stream index, or -1.
	LastChangedIndex int `json:"last_changed_index"`

	// MeanDeltaE and MaxDeltaE are CIEDE2000 distances over all pixels.
	MeanDeltaE float64 `json:"mean_delta_e"`
	MaxDeltaE  float64 `json:"max_delta_e"`

	// PSNR in dB over all samples; nil when the images are identical.
	PSNR *float64 `json:"psnr_db,omitempty"`
}

// CompareImages compares two carriers sample by sample.
//
// Both carriers must have the same dimensions. The perceptual distance uses
// CIEDE2000 on sRGB values, where a distance below about 1.0 is generally
// not visible.
func CompareImages(cover, stego *Carrier) (*CompareResult, error) {
	if cover.Width != stego.Width || cover.Height != stego.Height {
		return nil, fmt.Errorf("dimension mismatch: %dx%d vs %dx%d",
			cover.Width, cover.Height, stego.Width, stego.Height)
	}

	res := &CompareResult{
		Width:            cover.Width,
		Height:           cover.Height,
		LSBOnly:          true,
		LastChangedIndex: -1,
	}

	var sqErr, sumDeltaE float64
	pixels := cover.Width * cover.Height

	for p := 0; p < pixels; p++ {
		a := cover.Samples[p*3 : p*3+3]
		b := stego.Samples[p*3 : p*3+3]

		changed := false
		for ch := 0; ch < 3; ch++ {
			if a[ch] == b[ch] {
				continue
			}
			changed = true
			res.ChangedChannels++
			res.LastChangedIndex = p*3 + ch

			d := int(a[ch]) - int(b[ch])
			if d < 0 {
				d = -d
			}
			if d > res.MaxChannelDelta {
				res.MaxChannelDelta = d
			}
			if a[ch]&0xFE != b[ch]&0xFE {
				res.LSBOnly = false
			}
			sqErr += float64(d * d)
		}
		if !changed {
			continue
		}
		res.ChangedPixels++

		de := toColorful(a).DistanceCIEDE2000(toColorful(b))
		sumDeltaE += de
		if de > res.MaxDeltaE {
			res.MaxDeltaE = de
		}
	}

	if pixels > 0 {
		res.MeanDeltaE = sumDeltaE / float64(pixels)
	}
	if sqErr > 0 {
		mse := sqErr / float64(pixels*3)
		psnr := 10 * math.Log10(255*255/mse)
		res.PSNR = &psnr
	}

	return res, nil
}

func toColorful(rgb []byte) colorful.Color {
	return colorful.Color{
		R: float64(rgb[0]) / 255.0,
		G: float64(rgb[1]) / 255.0,
		B: float64(rgb[2]) / 255.0,
	}
}
