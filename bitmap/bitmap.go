/*
Package bitmap implements the packed, indexed-color sprite value consumed by
a WASM-4 style rendering layer.

Pixels are stored row after row with no padding between rows. Each pixel is
either a 1-bit or a 2-bit palette index and indices are packed most
significant bit first, so the first pixel of a byte occupies its high bits.
*/
package bitmap

import (
	"errors"
	"fmt"
)

// BitsPerPixel is the packing density of a Sprite.
type BitsPerPixel uint8

const (
	// One packs eight pixels per byte and allows two palette indices.
	One BitsPerPixel = 1
	// Two packs four pixels per byte and allows four palette indices.
	Two BitsPerPixel = 2
)

var (
	errBadBPP    = errors.New("bitmap: invalid bits per pixel")
	errBadLength = errors.New("bitmap: byte length does not match dimensions")
)

// Colors returns the number of palette indices addressable at this density.
func (b BitsPerPixel) Colors() int {
	return 1 << b
}

// Flag returns the value a WASM-4 blit call expects for this density.
func (b BitsPerPixel) Flag() uint32 {
	if b == Two {
		return 1
	}
	return 0
}

func (b BitsPerPixel) String() string {
	switch b {
	case One:
		return "1bpp"
	case Two:
		return "2bpp"
	default:
		return fmt.Sprintf("BitsPerPixel(%d)", uint8(b))
	}
}

func (b BitsPerPixel) valid() bool {
	return b == One || b == Two
}

// ByteLength returns the number of bytes needed to hold width by height
// pixels at the given density.
func ByteLength(width, height uint32, bpp BitsPerPixel) int {
	bits := uint64(width) * uint64(height) * uint64(bpp)
	return int((bits + 7) >> 3)
}

// Sprite is an immutable packed bitmap. Use New to construct one so the
// length invariant is checked.
type Sprite struct {
	Width  uint32
	Height uint32
	BPP    BitsPerPixel
	Bytes  []byte
}

// New returns a Sprite wrapping b. The slice is retained, not copied, and
// must not be modified afterwards.
func New(b []byte, width, height uint32, bpp BitsPerPixel) (*Sprite, error) {
	if !bpp.valid() {
		return nil, errBadBPP
	}
	if n := ByteLength(width, height, bpp); len(b) != n {
		return nil, fmt.Errorf("%w: want %d, got %d", errBadLength, n, len(b))
	}
	return &Sprite{
		Width:  width,
		Height: height,
		BPP:    bpp,
		Bytes:  b,
	}, nil
}

// Index returns the palette index of the pixel at x, y.
func (s *Sprite) Index(x, y uint32) uint8 {
	if x >= s.Width || y >= s.Height {
		panic("bitmap: pixel out of range")
	}

	pixel := uint64(y)*uint64(s.Width) + uint64(x)
	perByte := uint64(8 / s.BPP)
	mask := byte(1<<s.BPP - 1)

	i := pixel / perByte

	// The final byte is not left aligned, its pixels sit in the low bits
	used := perByte
	if total := uint64(s.Width) * uint64(s.Height); i == total/perByte {
		used = total % perByte
	}
	shift := (used - 1 - pixel%perByte) * uint64(s.BPP)

	return s.Bytes[i] >> shift & mask
}

// Indices returns every palette index in row order.
func (s *Sprite) Indices() []uint8 {
	out := make([]uint8, 0, int(s.Width)*int(s.Height))
	for y := uint32(0); y < s.Height; y++ {
		for x := uint32(0); x < s.Width; x++ {
			out = append(out, s.Index(x, y))
		}
	}
	return out
}

// Flags returns the WASM-4 blit flags for s combined with any transform
// flags.
func (s *Sprite) Flags(transform uint32) uint32 {
	return s.BPP.Flag() | transform
}
