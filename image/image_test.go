package image

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/textsprite/bitmap"
	"github.com/bodgit/textsprite/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smiley = `
....▒▒▒▒▒▒▒▒....
..▒▒▒▒▒▒▒▒▒▒▒▒..
▒▒▒▒██▒▒▒▒██▒▒▒▒
▒▒▒▒▓▓▒▒▒▒▓▓▒▒▒▒
▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒
▒▒▒▒██▒▒▒▒██▒▒▒▒
..▒▒▒▒████▒▒▒▒..
....▒▒▒▒▒▒▒▒....
`

func TestDecode(t *testing.T) {
	s := pattern.MustCompile("\n0011\n2233\n")

	m, err := Decode(s, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), m.Bounds())
	assert.Equal(t, uint8(0), m.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(1), m.ColorIndexAt(1, 0))
	assert.Equal(t, uint8(2), m.ColorIndexAt(0, 1))
	assert.Equal(t, uint8(3), m.ColorIndexAt(1, 1))
	assert.Equal(t, DefaultPalette[3], m.At(1, 1))
}

func TestDecodeOneBit(t *testing.T) {
	s := pattern.MustCompile("\n0011\n")

	m, err := Decode(s, color.Palette{color.Black, color.White})
	require.NoError(t, err)
	assert.Len(t, m.Palette, 2)
	assert.Equal(t, color.Gray16{0}, color.Gray16Model.Convert(m.At(0, 0)))
	assert.Equal(t, color.Gray16{0xffff}, color.Gray16Model.Convert(m.At(1, 0)))
}

func TestDecodeShortPalette(t *testing.T) {
	s := pattern.MustCompile("\n0011\n2233\n")
	_, err := Decode(s, color.Palette{color.Black, color.White})
	assert.Equal(t, errShortPalette, err)
}

func TestScale(t *testing.T) {
	m, err := Decode(pattern.MustCompile("\n0011\n2233\n"), nil)
	require.NoError(t, err)

	big, err := Scale(m, 3)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 6), big.Bounds())
	assert.Equal(t, uint8(0), big.ColorIndexAt(2, 2))
	assert.Equal(t, uint8(1), big.ColorIndexAt(3, 0))
	assert.Equal(t, uint8(3), big.ColorIndexAt(5, 5))

	same, err := Scale(m, 1)
	require.NoError(t, err)
	assert.Same(t, m, same)

	_, err = Scale(m, 0)
	assert.Equal(t, errBadScale, err)
}

func TestEncode(t *testing.T) {
	m, err := Decode(pattern.MustCompile("\n0011\n2233\n"), nil)
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, Encode(&b, m, "abcd", "  "))
	assert.Equal(t, "\n  aabb\n  ccdd\n", b.String())
}

func TestRoundTrip(t *testing.T) {
	for _, text := range []string{"\n0011\n", "\n0011\n2233\n", smiley} {
		s := pattern.MustCompile(text)

		m, err := Decode(s, nil)
		require.NoError(t, err)

		var b bytes.Buffer
		require.NoError(t, Encode(&b, m, "█▓▒.", "\t"))

		again, err := pattern.Compile(b.String())
		require.NoError(t, err)
		assert.Equal(t, s, again)
	}
}

func TestEncodeTrueColor(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 3, 2))
	m.Set(0, 0, color.RGBA{0xff, 0, 0, 0xff})
	m.Set(1, 0, color.RGBA{0, 0xff, 0, 0xff})
	m.Set(2, 0, color.RGBA{0, 0, 0xff, 0xff})
	m.Set(0, 1, color.RGBA{0xff, 0, 0, 0xff})
	m.Set(1, 1, color.RGBA{0, 0, 0, 0xff})
	m.Set(2, 1, color.RGBA{0, 0, 0xff, 0xff})

	var b bytes.Buffer
	require.NoError(t, Encode(&b, m, "0123", ""))
	assert.Equal(t, "\n001122\n003322\n", b.String())
}

func TestEncodeQuantizes(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 8, 1))
	for x := 0; x < 8; x++ {
		m.Set(x, 0, color.RGBA{uint8(x * 32), uint8(255 - x*32), 0x80, 0xff})
	}

	var b bytes.Buffer
	require.NoError(t, Encode(&b, m, "0123", ""))

	l, err := pattern.Analyze(b.String())
	require.NoError(t, err)
	assert.Equal(t, uint32(8), l.Width)
	assert.Equal(t, uint32(1), l.Height)
	assert.LessOrEqual(t, len(l.Glyphs), 4)
}

func TestEncodeGlyphErrors(t *testing.T) {
	m, err := Decode(pattern.MustCompile("\n0011\n2233\n"), nil)
	require.NoError(t, err)

	var b bytes.Buffer
	assert.Equal(t, errTooFewGlyphs, Encode(&b, m, "ab", ""))
	assert.Equal(t, errBadGlyph, Encode(&b, m, "ab d", ""))
	assert.Equal(t, errBadGlyph, Encode(&b, m, "abca", ""))
}

func TestDecodeOneByOne(t *testing.T) {
	s, err := bitmap.New([]byte{0x00}, 1, 1, bitmap.One)
	require.NoError(t, err)
	m, err := Decode(s, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), m.ColorIndexAt(0, 0))
}
