package steg

import "math"

// Embed hides payload in the least significant bits of samples and returns
// the modified copy. samples is a flattened RGB channel stream; it is not
// modified.
//
// The first HeaderBits samples carry the payload length in bits as a
// big-endian uint32. Payload bits follow, MSB first per byte. Only bit 0 of
// each touched sample changes.
//
// If the payload does not fit, Embed returns a *CapacityExceededError and no
// buffer.
func Embed(samples, payload []byte) ([]byte, error) {
	n := len(payload) * 8
	capacity := StreamCapacity(len(samples))
	if len(samples) < HeaderBits || n > capacity.AvailableBits || uint64(n) > math.MaxUint32 {
		return nil, &CapacityExceededError{
			NeededBits:    n,
			AvailableBits: capacity.AvailableBits,
			MaxBytes:      capacity.MaxBytes,
		}
	}

	out := make([]byte, len(samples))
	copy(out, samples)

	length := uint32(n)
	for i := 0; i < HeaderBits; i++ {
		bit := byte(length>>(HeaderBits-1-i)) & 1
		out[i] = out[i]&0xFE | bit
	}

	for i, bit := range BytesToBits(payload) {
		idx := HeaderBits + i
		out[idx] = out[idx]&0xFE | bit
	}

	return out, nil
}

// Extract recovers a payload written by Embed. It returns nil when the header
// is zero, shorter than one byte, or names more bits than the stream holds;
// all mean "no message".
// Carriers that were never embedded usually decode as no message, but random
// LSBs can occasionally produce a plausible length and a garbage payload.
func Extract(samples []byte) []byte {
	n, ok := ReadHeader(samples)
	if !ok || n == 0 || uint64(n) > uint64(len(samples)-HeaderBits) {
		return nil
	}

	bits := make([]byte, n)
	for i := range bits {
		bits[i] = samples[HeaderBits+i] & 1
	}
	out := BitsToBytes(bits)
	if len(out) == 0 {
		// fewer than 8 bits
		return nil
	}
	return out
}

// ReadHeader returns the raw length header in bits. ok is false when the
// stream is shorter than the header.
func ReadHeader(samples []byte) (n uint32, ok bool) {
	if len(samples) < HeaderBits {
		return 0, false
	}
	for i := 0; i < HeaderBits; i++ {
		n = n<<1 | uint32(samples[i]&1)
	}
	return n, true
}
