package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteLength(t *testing.T) {
	tables := []struct {
		width, height uint32
		bpp           BitsPerPixel
		want          int
	}{
		{0, 0, One, 0},
		{2, 1, One, 1},
		{8, 1, One, 1},
		{9, 1, One, 2},
		{2, 2, Two, 1},
		{3, 3, Two, 3},
		{8, 8, Two, 16},
		{160, 160, Two, 6400},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, ByteLength(table.width, table.height, table.bpp))
	}
}

func TestNew(t *testing.T) {
	s, err := New([]byte{0x1b}, 2, 2, Two)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), s.Width)
	assert.Equal(t, uint32(2), s.Height)
	assert.Equal(t, Two, s.BPP)

	_, err = New([]byte{0x1b, 0x00}, 2, 2, Two)
	assert.ErrorIs(t, err, errBadLength)

	_, err = New([]byte{0x1b}, 2, 2, BitsPerPixel(3))
	assert.Equal(t, errBadBPP, err)
}

func TestIndex(t *testing.T) {
	s, err := New([]byte{0x1b}, 2, 2, Two)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1, 2, 3}, s.Indices())

	// Partial final byte keeps its pixels in the low bits
	s, err = New([]byte{0x01}, 2, 1, One)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), s.Index(0, 0))
	assert.Equal(t, uint8(1), s.Index(1, 0))

	// 3x3 at 2bpp: two full bytes then a single pixel
	s, err = New([]byte{0b00_01_10_11, 0b11_10_01_00, 0b10}, 3, 3, Two)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1, 2, 3, 3, 2, 1, 0, 2}, s.Indices())

	assert.Panics(t, func() { s.Index(3, 0) })
}

func TestBitsPerPixel(t *testing.T) {
	assert.Equal(t, 2, One.Colors())
	assert.Equal(t, 4, Two.Colors())
	assert.Equal(t, "1bpp", One.String())
	assert.Equal(t, "2bpp", Two.String())
	assert.Equal(t, uint32(0), One.Flag())
	assert.Equal(t, uint32(1), Two.Flag())

	s := &Sprite{BPP: Two}
	assert.Equal(t, uint32(0b1011), s.Flags(0b1010))
}
