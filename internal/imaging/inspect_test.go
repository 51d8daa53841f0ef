package imaging

import (
	"testing"
)

func TestInspectPixels(t *testing.T) {
	// 4x4 pattern: red, green, blue, white quadrants
	c := CarrierFromImage(createPatternImage(4, 4))
	c.Samples[0] = 254 // clear the red LSB at (0,0)

	points := []LabeledPoint{
		{X: 0, Y: 0, Label: "origin"},
		{X: 3, Y: 0},
		{X: 2, Y: 2, Label: "white"},
	}

	result, err := InspectPixels(c, points)
	if err != nil {
		t.Fatalf("InspectPixels failed: %v", err)
	}
	if len(result.Samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(result.Samples))
	}

	origin := result.Samples[0]
	if origin.Label != "origin" || origin.StreamIndex != 0 || origin.Region != "header" {
		t.Errorf("origin: got %+v", origin)
	}
	if origin.Channels != (RGBColor{254, 0, 0}) || origin.LSBs != (RGBColor{0, 0, 0}) {
		t.Errorf("origin channels/lsbs: got %+v / %+v", origin.Channels, origin.LSBs)
	}
	if origin.Hex != "#fe0000" {
		t.Errorf("origin hex: got %s, want #fe0000", origin.Hex)
	}

	green := result.Samples[1]
	if green.StreamIndex != 9 || green.Region != "header" {
		t.Errorf("(3,0): got index %d region %s, want 9 header", green.StreamIndex, green.Region)
	}
	if green.LSBs != (RGBColor{0, 1, 0}) {
		t.Errorf("(3,0) lsbs: got %+v", green.LSBs)
	}

	white := result.Samples[2]
	if white.StreamIndex != 30 || white.Region != "header" {
		t.Errorf("(2,2): got index %d region %s", white.StreamIndex, white.Region)
	}
	if white.LSBs != (RGBColor{1, 1, 1}) {
		t.Errorf("(2,2) lsbs: got %+v", white.LSBs)
	}
}

func TestInspectPixels_PayloadRegion(t *testing.T) {
	c := CarrierFromImage(createPatternImage(4, 4))
	result, err := InspectPixels(c, []LabeledPoint{{X: 3, Y: 2}, {X: 3, Y: 3}})
	if err != nil {
		t.Fatalf("InspectPixels failed: %v", err)
	}
	// (3,2) starts at 33; its samples 33..35 are all past the header.
	if result.Samples[0].StreamIndex != 33 || result.Samples[0].Region != "payload" {
		t.Errorf("(3,2): got %+v", result.Samples[0])
	}
	if result.Samples[1].StreamIndex != 45 {
		t.Errorf("(3,3): got index %d, want 45", result.Samples[1].StreamIndex)
	}
}

func TestInspectPixels_OutOfBounds(t *testing.T) {
	c := CarrierFromImage(createPatternImage(4, 4))

	tests := []LabeledPoint{
		{X: -1, Y: 0},
		{X: 0, Y: -1},
		{X: 4, Y: 0},
		{X: 0, Y: 4},
	}
	for _, p := range tests {
		if _, err := InspectPixels(c, []LabeledPoint{{X: 1, Y: 1}, p}); err == nil {
			t.Errorf("point (%d,%d) should be rejected", p.X, p.Y)
		}
	}
}

func TestInspectPixels_Empty(t *testing.T) {
	c := CarrierFromImage(createPatternImage(2, 2))
	result, err := InspectPixels(c, nil)
	if err != nil {
		t.Fatalf("InspectPixels failed: %v", err)
	}
	if len(result.Samples) != 0 {
		t.Errorf("got %d samples, want 0", len(result.Samples))
	}
}
