package payload

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromText_NormalizesToNFC(t *testing.T) {
	decomposed := "e\u0301"
	composed := "\u00e9"

	assert.Equal(t, []byte(composed), FromText(decomposed))
	assert.Equal(t, []byte(composed), FromText(composed))
	assert.Equal(t, []byte("plain ascii"), FromText("plain ascii"))
	assert.Empty(t, FromText(""))
}

func TestFromBase64(t *testing.T) {
	b, err := FromBase64("AP+A")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xFF, 0x80}, b)

	_, err = FromBase64("not base64!")
	assert.Error(t, err)
}

func TestCompressRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"short", []byte("Hello world!")},
		{"repetitive", bytes.Repeat([]byte("A"), 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compress(tt.data)
			require.NoError(t, err)

			d, err := Decompress(c)
			require.NoError(t, err)
			assert.Equal(t, tt.data, d)
		})
	}
}

func TestCompress_Shrinks(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 4096)
	c, err := Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(c), len(data))
}

func TestDecompress_Garbage(t *testing.T) {
	_, err := Decompress([]byte("definitely not zstd"))
	assert.Error(t, err)
}

func TestDecompress_SizeLimit(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 64*1024)
	compressed, err := Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), 1024)

	out, err := decompress(compressed, 2*uint64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, data, out)

	_, err = decompress(compressed, 4096)
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	d := Describe([]byte("Hi"))
	assert.True(t, d.IsText)
	assert.Equal(t, "Hi", d.Text)
	assert.Equal(t, "SGk=", d.Base64)
	assert.Equal(t, 2, d.Bytes)

	bin := Describe([]byte{0xFF, 0xFE})
	assert.False(t, bin.IsText)
	assert.Empty(t, bin.Text)
	assert.Equal(t, "//4=", bin.Base64)
}
