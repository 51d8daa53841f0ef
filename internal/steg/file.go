package steg

import (
	"fmt"

	"github.com/ironsheep/steg-tools-mcp/internal/imaging"
)

// EncodeResult describes a stego image written by EncodeFile.
type EncodeResult struct {
	OutputPath   string       `json:"output_path"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	PayloadBytes int          `json:"payload_bytes"`
	PayloadBits  int          `json:"payload_bits"`
	Capacity     CapacityInfo `json:"capacity"`
}

// EncodeFile hides payload in the image at src and writes the result to dst.
// The capacity check runs before anything is written, so a failed encode
// leaves dst untouched.
func EncodeFile(src string, payload []byte, dst string) (*EncodeResult, error) {
	carrier, err := imaging.DecodeCarrier(src)
	if err != nil {
		return nil, err
	}
	return EncodeCarrier(carrier, payload, dst)
}

// EncodeCarrier is EncodeFile for an already decoded carrier. carrier is not
// modified.
func EncodeCarrier(carrier *imaging.Carrier, payload []byte, dst string) (*EncodeResult, error) {
	samples, err := Embed(carrier.Samples, payload)
	if err != nil {
		return nil, err
	}

	out := &imaging.Carrier{Width: carrier.Width, Height: carrier.Height, Samples: samples}
	if err := imaging.SaveCarrier(out, dst); err != nil {
		return nil, err
	}

	return &EncodeResult{
		OutputPath:   dst,
		Width:        carrier.Width,
		Height:       carrier.Height,
		PayloadBytes: len(payload),
		PayloadBits:  len(payload) * 8,
		Capacity:     Capacity(carrier.Width, carrier.Height),
	}, nil
}

// DecodeResult describes a payload recovered by DecodeFile. Found is false
// when the image carries no message; that is not an error.
type DecodeResult struct {
	Found      bool   `json:"found"`
	LengthBits uint32 `json:"length_bits"`
	Payload    []byte `json:"-"`
}

// DecodeFile recovers the payload hidden in the image at path.
func DecodeFile(path string) (*DecodeResult, error) {
	carrier, err := imaging.DecodeCarrier(path)
	if err != nil {
		return nil, err
	}
	return DecodeCarrier(carrier), nil
}

// DecodeCarrier is DecodeFile for an already decoded carrier.
func DecodeCarrier(carrier *imaging.Carrier) *DecodeResult {
	payload := Extract(carrier.Samples)
	if payload == nil {
		return &DecodeResult{}
	}
	n, _ := ReadHeader(carrier.Samples)
	return &DecodeResult{Found: true, LengthBits: n, Payload: payload}
}

// CheckFits validates a payload length against a decoded carrier and returns
// a *CapacityExceededError when it does not fit.
func CheckFits(carrier *imaging.Carrier, payloadLen int) error {
	capacity := Capacity(carrier.Width, carrier.Height)
	check := ValidateLength(payloadLen, capacity.MaxBytes)
	if !check.Valid || carrier.Width*carrier.Height*ChannelsPerPixel < HeaderBits {
		return fmt.Errorf("payload of %d bytes rejected: %w", payloadLen, &CapacityExceededError{
			NeededBits:    payloadLen * 8,
			AvailableBits: capacity.AvailableBits,
			MaxBytes:      capacity.MaxBytes,
		})
	}
	return nil
}
