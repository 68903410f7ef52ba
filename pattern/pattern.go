/*
Package pattern compiles the WASM-4 inline sprite text format into packed
bitmaps.

The text starts with a single newline which is discarded. Every row that
follows is a run of glyph pairs terminated by a newline, including the last
row. Each pixel is written as the same glyph twice so the grid looks square
in a monospaced editor. Spaces and tabs are ignored anywhere so sprites can
be indented:

	const smiley = `
	    ....▒▒▒▒▒▒▒▒....
	    ..▒▒▒▒▒▒▒▒▒▒▒▒..
	    ▒▒▒▒██▒▒▒▒██▒▒▒▒
	    ▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒
	    ..▒▒▒▒████▒▒▒▒..
	    ....▒▒▒▒▒▒▒▒....
	    `

Up to four distinct glyphs may be used and each is given a palette index in
order of first appearance. Two or fewer glyphs produce a 1 bit per pixel
sprite, otherwise 2 bits per pixel.

Compilation is two passes over the same text: Calc works out the density and
exact byte length without writing anything, then Build packs the pixels into
a buffer of exactly that length.
*/
package pattern

import (
	"fmt"

	"github.com/bodgit/textsprite/bitmap"
)

// Layout is the result of the sizing pass.
type Layout struct {
	Width    uint32
	Height   uint32
	BPP      bitmap.BitsPerPixel
	Capacity int
	// Glyphs in palette index order
	Glyphs []rune
}

// Analyze runs the sizing pass over text.
func Analyze(text string) (*Layout, error) {
	s, err := scan(text, nil, bitmap.Two)
	if err != nil {
		return nil, err
	}

	bpp := s.palette.bpp()

	return &Layout{
		Width:    s.width,
		Height:   s.row,
		BPP:      bpp,
		Capacity: bitmap.ByteLength(s.width, s.row, bpp),
		Glyphs:   s.palette.slice(),
	}, nil
}

// Calc returns the density and byte length of the sprite described by text.
func Calc(text string) (bitmap.BitsPerPixel, int, error) {
	l, err := Analyze(text)
	if err != nil {
		return 0, 0, err
	}
	return l.BPP, l.Capacity, nil
}

// Build packs the sprite described by text into out, which must be exactly
// the length returned by Calc for the same text. The returned Sprite
// retains out.
func Build(text string, out []byte) (*bitmap.Sprite, error) {
	bpp, capacity, err := Calc(text)
	if err != nil {
		return nil, err
	}

	if capacity != len(out) {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInconsistentCapacity, capacity, len(out))
	}

	s, err := scan(text, out, bpp)
	if err != nil {
		return nil, err
	}

	return bitmap.New(out, s.width, s.row, bpp)
}

// Compile sizes and builds the sprite described by text.
func Compile(text string) (*bitmap.Sprite, error) {
	_, capacity, err := Calc(text)
	if err != nil {
		return nil, err
	}
	return Build(text, make([]byte, capacity))
}

// MustCompile is like Compile but panics if text is not a valid sprite. It
// simplifies initialization of package level sprite variables.
func MustCompile(text string) *bitmap.Sprite {
	s, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return s
}
