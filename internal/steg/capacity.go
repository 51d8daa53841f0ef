package steg

// HeaderBits is the width of the length header written at the start of the
// flattened channel stream.
const HeaderBits = 32

// ChannelsPerPixel is the number of samples per pixel after RGB normalisation.
const ChannelsPerPixel = 3

// CapacityInfo describes how much payload a carrier can hold.
type CapacityInfo struct {
	// AvailableBits is the number of LSB slots left after the length header.
	// Carriers smaller than the header report 0.
	AvailableBits int `json:"max_bits"`

	// MaxBytes is the largest payload, in bytes, that fits.
	MaxBytes int `json:"max_chars"`

	// PixelCount is width*height.
	PixelCount int `json:"pixels_used"`
}

// Capacity computes the embedding capacity of a width x height RGB image.
//
// available_bits = width*height*3 - 32, clamped at 0, and max_bytes is
// available_bits / 8.
func Capacity(width, height int) CapacityInfo {
	if width < 0 || height < 0 {
		return CapacityInfo{}
	}
	info := StreamCapacity(width * height * ChannelsPerPixel)
	info.PixelCount = width * height
	return info
}

// StreamCapacity computes capacity from the length of a flattened channel
// stream. PixelCount is derived as streamLen / 3.
func StreamCapacity(streamLen int) CapacityInfo {
	available := streamLen - HeaderBits
	if available < 0 {
		available = 0
	}
	pixels := 0
	if streamLen > 0 {
		pixels = streamLen / ChannelsPerPixel
	}
	return CapacityInfo{
		AvailableBits: available,
		MaxBytes:      available / 8,
		PixelCount:    pixels,
	}
}

// BytesToBits expands payload into one 0/1 value per bit, most significant
// bit first within each byte.
func BytesToBits(payload []byte) []byte {
	bits := make([]byte, len(payload)*8)
	for i, b := range payload {
		for j := 0; j < 8; j++ {
			bits[i*8+j] = (b >> (7 - j)) & 1
		}
	}
	return bits
}

// BitsToBytes packs 0/1 values back into bytes, MSB first. A trailing group
// shorter than 8 bits is dropped without error. Only the low bit of each
// input value is used.
func BitsToBytes(bits []byte) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for _, bit := range bits[i*8 : i*8+8] {
			b = b<<1 | bit&1
		}
		out[i] = b
	}
	return out
}

// LengthCheck is the outcome of ValidateLength.
type LengthCheck struct {
	Valid    bool `json:"valid"`
	Length   int  `json:"length"`
	MaxBytes int  `json:"max_bytes"`
}

// ValidateLength reports whether a payload of payloadLen bytes fits in a
// carrier that holds at most maxBytes.
func ValidateLength(payloadLen, maxBytes int) LengthCheck {
	return LengthCheck{
		Valid:    payloadLen <= maxBytes,
		Length:   payloadLen,
		MaxBytes: maxBytes,
	}
}
