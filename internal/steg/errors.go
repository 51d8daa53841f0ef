package steg

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is matched by errors.Is for any payload that does not
// fit in the carrier.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// CapacityExceededError reports a payload that needs more LSB slots than the
// carrier offers after the length header.
type CapacityExceededError struct {
	NeededBits    int // payload size in bits
	AvailableBits int // carrier slots left after the header, never negative
	MaxBytes      int // AvailableBits / 8
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("message too long: needs %d bits, %d available (maximum capacity: %d characters)",
		e.NeededBits, e.AvailableBits, e.MaxBytes)
}

// Is lets errors.Is(err, ErrCapacityExceeded) match.
func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
