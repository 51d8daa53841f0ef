package imaging

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// headerSamples is the length of the length header at the start of the stream.
const headerSamples = 32

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// PixelSample describes one pixel of a carrier as the codec sees it.
type PixelSample struct {
	Label string `json:"label,omitempty"`
	X     int    `json:"x"`
	Y     int    `json:"y"`

	// Hex is the pixel color as "#rrggbb".
	Hex string `json:"hex"`

	// Channels are the 8-bit R, G, B samples.
	Channels RGBColor `json:"channels"`

	// LSBs holds bit 0 of each channel.
	LSBs RGBColor `json:"lsbs"`

	// StreamIndex is the position of this pixel's R sample in the flattened
	// channel stream; G and B follow at +1 and +2.
	StreamIndex int `json:"stream_index"`

	// Region is "header" when any of the pixel's samples fall in the
	// 32-sample length header, otherwise "payload".
	Region string `json:"region"`
}

// InspectResult contains pixel samples in input order.
type InspectResult struct {
	Samples []PixelSample `json:"samples"`
}

// InspectPixels reports channel values, their LSBs, and stream positions for
// each point.
//
// Parameters:
//   - c: The normalised carrier to read.
//   - points: Coordinates to sample, each with an optional label.
//
// Returns:
//   - *InspectResult: One sample per point, in input order.
//   - error: Non-nil if any point lies outside the carrier. No partial
//     results are returned.
func InspectPixels(c *Carrier, points []LabeledPoint) (*InspectResult, error) {
	samples := make([]PixelSample, 0, len(points))

	for _, p := range points {
		if p.X < 0 || p.X >= c.Width || p.Y < 0 || p.Y >= c.Height {
			return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", p.X, p.Y, c.Width, c.Height)
		}

		idx := (p.Y*c.Width + p.X) * 3
		r, g, b := c.Samples[idx], c.Samples[idx+1], c.Samples[idx+2]
		col, _ := colorful.MakeColor(color.NRGBA{R: r, G: g, B: b, A: 0xFF})

		region := "payload"
		if idx < headerSamples {
			region = "header"
		}

		samples = append(samples, PixelSample{
			Label:       p.Label,
			X:           p.X,
			Y:           p.Y,
			Hex:         col.Hex(),
			Channels:    RGBColor{R: r, G: g, B: b},
			LSBs:        RGBColor{R: r & 1, G: g & 1, B: b & 1},
			StreamIndex: idx,
			Region:      region,
		})
	}

	return &InspectResult{Samples: samples}, nil
}
