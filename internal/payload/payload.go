// Package payload prepares message bytes for embedding and interprets
// recovered bytes. It sits above the codec: whatever it produces is embedded
// verbatim, so the on-image layout does not depend on these options.
package payload

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/unicode/norm"
)

// FromText returns the UTF-8 bytes of s in Unicode NFC form, so that the
// same visible text always embeds as the same bytes.
func FromText(s string) []byte {
	return []byte(norm.NFC.String(s))
}

// FromBase64 decodes a standard base64 payload.
func FromBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return b, nil
}

// Compress returns data as a single zstd frame.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// MaxDecompressedSize caps the output of Decompress. Recovered payloads are
// untrusted, and a few kilobytes of zstd can expand to gigabytes.
const MaxDecompressedSize = 64 << 20

// Decompress reverses Compress. Payloads that would expand beyond
// MaxDecompressedSize are rejected.
func Decompress(data []byte) ([]byte, error) {
	return decompress(data, MaxDecompressedSize)
}

func decompress(data []byte, limit uint64) ([]byte, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	return out, nil
}

// Decoded is a recovered payload in the forms a client can use.
type Decoded struct {
	// Text is set only when the payload is valid UTF-8.
	Text   string `json:"message,omitempty"`
	IsText bool   `json:"is_text"`
	Base64 string `json:"message_base64"`
	Bytes  int    `json:"bytes"`
}

// Describe renders recovered bytes as text when they are valid UTF-8 and
// always as base64.
func Describe(data []byte) Decoded {
	d := Decoded{
		Base64: base64.StdEncoding.EncodeToString(data),
		Bytes:  len(data),
	}
	if utf8.Valid(data) {
		d.Text = string(data)
		d.IsText = true
	}
	return d
}
