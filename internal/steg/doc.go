// Package steg hides byte payloads in the least significant bits of RGB
// channel samples and recovers them.
//
// # Stream Layout
//
// A carrier image is flattened into one sample stream: pixels in row-major
// order, then R, G, B within each pixel. Each sample holds one payload bit in
// bit 0; the upper 7 bits are never changed.
//
//	index  0..31        length header, payload size in bits, big-endian uint32
//	index 32..32+n-1    payload bits, MSB first per byte
//	index 32+n..        untouched
//
// An empty payload still writes a 32-bit zero header.
//
// # Capacity
//
// A W x H carrier holds W*H*3 - 32 payload bits, i.e. (W*H*3 - 32) / 8 bytes.
// Embed refuses anything larger with a *CapacityExceededError before any
// sample is touched.
//
// # No Message
//
// Extract returns nil when the header is zero, is below 8 bits, or names more
// bits than the stream holds. This is a normal outcome, not an error, and is what an image
// that was never embedded usually decodes to. The format carries no marker or
// checksum, so a random header can occasionally pass the plausibility check
// and yield garbage.
//
// # Concurrency
//
// All functions are pure over their inputs. Embed copies the stream before
// writing, so callers may share a carrier between goroutines as long as none
// of them mutates it.
package steg
